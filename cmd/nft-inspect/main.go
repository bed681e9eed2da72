// Command nft-inspect is a read-only inspector for PUT NFT mints, NFT accounts
// and token MintMeta accounts.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"
	xrate "golang.org/x/time/rate"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/put-labs/nft-client/pkg/rate"
	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/nft"
	"github.com/put-labs/nft-client/pkg/solana/token"
)

const appName = "nft-inspect"

var errUsage = errors.New("invalid usage")

var (
	commitmentFlag = cli.StringFlag{
		Name:  "commitment",
		Usage: "commitment level: processed, confirmed or finalized",
		Value: "confirmed",
	}
	outputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "output format: display, json or json-compact",
		Value: "display",
	}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, WithEnvConfigs(), newSolanaClient))
}

type solanaClientFactory func(endpoint string, opts *jsonrpc.RPCClientOpts, limiter rate.Limiter) solana.Client

func newSolanaClient(endpoint string, opts *jsonrpc.RPCClientOpts, limiter rate.Limiter) solana.Client {
	return solana.NewRateLimited(endpoint, opts, limiter)
}

// newLimiter returns a per method limiter, or no limit for a non-positive
// requests per second.
func newLimiter(requestsPerSecond float64) rate.Limiter {
	if requestsPerSecond <= 0 {
		return &rate.NoLimiter{}
	}
	return rate.NewLocalRateLimiter(xrate.Limit(requestsPerSecond))
}

// run executes a command line and returns the process exit code: 0 on
// success, 1 when the command fails and 2 on a usage error.
func run(args []string, stdout, stderr io.Writer, configProvider ConfigProvider, clientFactory solanaClientFactory) int {
	conf := configProvider()
	ctx := context.Background()

	log := logrus.StandardLogger().WithField("type", "cmd/nft-inspect")
	if level, err := logrus.ParseLevel(conf.logLevel.Get(ctx)); err != nil {
		log.WithError(err).Warn("invalid log level, keeping default")
	} else {
		logrus.SetLevel(level)
	}

	e := &environment{
		ctx:           ctx,
		log:           log,
		conf:          conf,
		clientFactory: clientFactory,
		stdout:        stdout,
	}

	err := newApp(e, stdout, stderr).Run(append([]string{appName}, args...))
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "error:", err)
		fmt.Fprintf(stderr, "run '%s help' for usage\n", appName)
		return 2
	default:
		log.WithError(err).Debug("command failed")
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
}

// environment holds what commands share for a single run.
type environment struct {
	ctx           context.Context
	log           *logrus.Entry
	conf          *conf
	clientFactory solanaClientFactory
	stdout        io.Writer
}

func newApp(e *environment, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.HelpName = appName
	app.Usage = "inspect PUT NFT mints, NFT accounts and token MintMeta accounts"
	app.UsageText = appName + " [global options] command [arguments...]"
	app.HideVersion = true
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{commitmentFlag, outputFlag}
	app.OnUsageError = onUsageError
	app.Action = func(c *cli.Context) error {
		if c.NArg() == 0 {
			_ = cli.ShowAppHelp(c)
			return errors.Wrap(errUsage, "missing command")
		}
		return errors.Wrapf(errUsage, "unknown command %q", c.Args().First())
	}
	app.Commands = []cli.Command{
		{
			Name:         "mint-info",
			Usage:        "show an NFT mint",
			ArgsUsage:    "<mint>",
			OnUsageError: onUsageError,
			Action: e.withInspector(1, 1, func(c *cli.Context, i *inspector) error {
				return i.mintInfo(e.stdout, c.Args().Get(0))
			}),
		},
		{
			Name:         "nft-info",
			Usage:        "show an NFT account, by address or by mint and token id",
			ArgsUsage:    "<nft> | <mint> <token id>",
			OnUsageError: onUsageError,
			Action: e.withInspector(1, 2, func(c *cli.Context, i *inspector) error {
				if c.NArg() == 2 {
					return i.nftInfoByTokenID(e.stdout, c.Args().Get(0), c.Args().Get(1))
				}
				return i.nftInfo(e.stdout, c.Args().Get(0))
			}),
		},
		{
			Name:         "mint-meta",
			Usage:        "show the MintMeta of a token mint",
			ArgsUsage:    "<mint>",
			OnUsageError: onUsageError,
			Action: e.withInspector(1, 1, func(c *cli.Context, i *inspector) error {
				return i.mintMeta(e.stdout, c.Args().Get(0))
			}),
		},
		{
			Name:         "accounts",
			Usage:        "list the NFTs held by an owner",
			ArgsUsage:    "<owner>",
			OnUsageError: onUsageError,
			Action: e.withInspector(1, 1, func(c *cli.Context, i *inspector) error {
				return i.accounts(e.stdout, c.Args().Get(0))
			}),
		},
		{
			Name:         "decode",
			Usage:        "decode raw bytes offline (mint, nft, mint-meta, nft-instruction, token-instruction)",
			ArgsUsage:    "<kind> <base64|hex>",
			OnUsageError: onUsageError,
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 2, 2); err != nil {
					return err
				}
				return decode(e.stdout, c.Args().Get(0), c.Args().Get(1))
			},
		},
	}
	return app
}

func onUsageError(_ *cli.Context, err error, _ bool) error {
	return errors.Wrap(errUsage, err.Error())
}

func checkArgs(c *cli.Context, minArgs, maxArgs int) error {
	if n := c.NArg(); n < minArgs || n > maxArgs {
		return errors.Wrapf(errUsage, "%s takes %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}

// withInspector checks the argument count and connects to the RPC endpoint
// before running action.
func (e *environment) withInspector(minArgs, maxArgs int, action func(*cli.Context, *inspector) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		if err := checkArgs(c, minArgs, maxArgs); err != nil {
			return err
		}

		commitment, err := parseCommitment(c.GlobalString(commitmentFlag.Name))
		if err != nil {
			return errors.Wrap(errUsage, err.Error())
		}
		output, err := parseOutputFormat(c.GlobalString(outputFlag.Name))
		if err != nil {
			return errors.Wrap(errUsage, err.Error())
		}

		endpoint := e.conf.rpcEndpoint.Get(e.ctx)
		e.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"command":  c.Command.Name,
		}).Debug("connecting to rpc endpoint")

		sc := e.clientFactory(
			endpoint,
			&jsonrpc.RPCClientOpts{HTTPClient: &http.Client{Timeout: e.conf.rpcTimeout.Get(e.ctx)}},
			newLimiter(e.conf.rpcRateLimit.Get(e.ctx)),
		)
		return action(c, newInspector(
			nft.NewClient(sc, e.conf.nftProgram.Get(e.ctx)),
			token.NewClient(sc, e.conf.tokenProgram.Get(e.ctx)),
			commitment,
			output,
		))
	}
}

func parseCommitment(name string) (solana.Commitment, error) {
	switch name {
	case "processed":
		return solana.CommitmentProcessed, nil
	case "confirmed":
		return solana.CommitmentConfirmed, nil
	case "finalized":
		return solana.CommitmentFinalized, nil
	default:
		return solana.Commitment{}, errors.Errorf("unknown commitment %q", name)
	}
}
