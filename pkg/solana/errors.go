package solana

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ybbus/jsonrpc"
)

var (
	// ErrWrongOpcode indicates instruction data starts with an unexpected opcode.
	ErrWrongOpcode = errors.New("wrong opcode")

	// ErrInstructionDataSizeMismatch indicates instruction data is not exactly
	// the span of its layout.
	ErrInstructionDataSizeMismatch = errors.New("instruction data size mismatch")

	// ErrArgumentEncoding indicates an instruction argument could not be encoded
	// into its fixed slot.
	ErrArgumentEncoding = errors.New("argument encoding error")

	// ErrUnknownVariant indicates an enum discriminant has no matching variant.
	ErrUnknownVariant = errors.New("unknown variant")
)

// ArgumentError names the instruction argument that failed to encode. It
// matches ErrArgumentEncoding and unwraps to the underlying layout error.
type ArgumentError struct {
	Arg string
	Err error
}

func NewArgumentError(arg string, err error) *ArgumentError {
	return &ArgumentError{Arg: arg, Err: err}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrArgumentEncoding.Error(), e.Arg, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgumentEncoding
}

// CheckInstructionData validates the opcode and exact length of an encoded
// instruction payload.
func CheckInstructionData(data []byte, opcode byte, span int) error {
	if len(data) != span {
		return errors.Wrapf(ErrInstructionDataSizeMismatch, "got %d bytes, expected %d", len(data), span)
	}
	if data[0] != opcode {
		return errors.Wrapf(ErrWrongOpcode, "got %d, expected %d", data[0], opcode)
	}
	return nil
}

// CustomError is the numerical error returned by a non-system program.
type CustomError int

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: %x", int(c))
}

// InstructionError indicates an instruction returned an error in a transaction.
type InstructionError struct {
	Index int
	Err   error
}

func (i InstructionError) Error() string {
	return fmt.Sprintf("Error processing Instruction %d: %v", i.Index, i.Err)
}

// CustomError returns the program error code, if any.
func (i InstructionError) CustomError() *CustomError {
	ce, ok := i.Err.(CustomError)
	if ok {
		return &ce
	}

	return nil
}

// TransactionError is a failed transaction result as reported by the RPC node.
type TransactionError struct {
	transactionError error
	instructionError *InstructionError
}

func (t TransactionError) Error() string {
	if t.instructionError != nil {
		return t.instructionError.Error()
	}
	if t.transactionError != nil {
		return t.transactionError.Error()
	}
	return ""
}

func (t TransactionError) InstructionError() *InstructionError {
	return t.instructionError
}

// ParseRPCError extracts the transaction error carried in a sendTransaction
// preflight failure.
func ParseRPCError(err *jsonrpc.RPCError) (*TransactionError, error) {
	if err == nil {
		return nil, nil
	}

	data, ok := err.Data.(map[string]interface{})
	if !ok {
		return nil, errors.New("expected map type")
	}

	if txErr, ok := data["err"]; ok && txErr != nil {
		return ParseTransactionError(txErr)
	}

	return nil, nil
}

// ParseTransactionError parses the JSON "err" field of RPC results, e.g.
// "AccountNotFound" or {"InstructionError":[0,{"Custom":4}]}.
func ParseTransactionError(raw interface{}) (*TransactionError, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return &TransactionError{transactionError: errors.New(t)}, nil
	case map[string]interface{}:
		if len(t) != 1 {
			return nil, errors.Errorf("invalid transaction result size: %d", len(t))
		}

		for k, v := range t {
			if k != "InstructionError" {
				return &TransactionError{transactionError: errors.New(k)}, nil
			}

			instructionErr, err := parseInstructionError(v)
			if err != nil {
				return nil, errors.Wrap(err, "failed to parse instruction error")
			}

			return &TransactionError{
				transactionError: errors.New(k),
				instructionError: &instructionErr,
			}, nil
		}
	}

	return nil, errors.New("unhandled error type")
}

func parseInstructionError(v interface{}) (e InstructionError, err error) {
	values, ok := v.([]interface{})
	if !ok {
		return e, errors.New("unexpected instruction error format")
	}
	if len(values) != 2 {
		return e, errors.Errorf("unexpected entries in InstructionError tuple: %d", len(values))
	}

	e.Index, err = parseJSONNumber(values[0])
	if err != nil {
		return e, err
	}

	switch t := values[1].(type) {
	case string:
		e.Err = errors.New(t)
	case map[string]interface{}:
		custom, ok := t["Custom"]
		if len(t) != 1 || !ok {
			e.Err = errors.New("unhandled InstructionError")
			break
		}

		code, err := parseJSONNumber(custom)
		if err != nil {
			e.Err = errors.New("unhandled CustomError")
			break
		}
		e.Err = CustomError(code)
	default:
		e.Err = errors.New("unhandled InstructionError")
	}

	return e, nil
}

func parseJSONNumber(v interface{}) (int, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, errors.Errorf("non int64 value: %v", v)
		}
		return int(i), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, errors.Errorf("non numeric value: %v", v)
		}
		return int(i), nil
	case float64:
		return int(n), nil
	}

	return 0, errors.Errorf("non numeric value: %v", v)
}
