package solana

// Environment is the JSON RPC endpoint of a cluster.
type Environment string

const (
	// EnvironmentLocal is the endpoint of a locally running validator.
	EnvironmentLocal Environment = "http://127.0.0.1:8899"
)
