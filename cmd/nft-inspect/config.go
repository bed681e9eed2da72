package main

import (
	"crypto/ed25519"
	"time"

	"github.com/put-labs/nft-client/pkg/config"
	"github.com/put-labs/nft-client/pkg/config/env"
	"github.com/put-labs/nft-client/pkg/config/memory"
	"github.com/put-labs/nft-client/pkg/config/wrapper"
	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/nft"
	"github.com/put-labs/nft-client/pkg/solana/token"
)

const (
	envConfigPrefix = "NFT_"

	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = string(solana.EnvironmentLocal)

	RpcTimeoutConfigEnvName = envConfigPrefix + "RPC_TIMEOUT"
	defaultRpcTimeout       = 30 * time.Second

	RpcRateLimitConfigEnvName = envConfigPrefix + "RPC_RATE_LIMIT"
	defaultRpcRateLimit       = 0

	LogLevelConfigEnvName = envConfigPrefix + "LOG_LEVEL"
	defaultLogLevel       = "info"

	NftProgramConfigEnvName = envConfigPrefix + "PROGRAM_ID"

	TokenProgramConfigEnvName = "TOKEN_PROGRAM_ID"
)

type conf struct {
	rpcEndpoint  config.String
	rpcTimeout   config.Duration
	rpcRateLimit config.Float64
	logLevel     config.String
	nftProgram   config.PublicKey
	tokenProgram config.PublicKey
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:  env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			rpcTimeout:   env.NewDurationConfig(RpcTimeoutConfigEnvName, defaultRpcTimeout),
			rpcRateLimit: env.NewFloat64Config(RpcRateLimitConfigEnvName, defaultRpcRateLimit),
			logLevel:     env.NewStringConfig(LogLevelConfigEnvName, defaultLogLevel),
			nftProgram:   env.NewPublicKeyConfig(NftProgramConfigEnvName, nft.ProgramKey),
			tokenProgram: env.NewPublicKeyConfig(TokenProgramConfigEnvName, token.ProgramKey),
		}
	}
}

type testOverrides struct {
	rpcEndpoint  string
	rpcRateLimit float64
	nftProgram   ed25519.PublicKey
	tokenProgram ed25519.PublicKey
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:  wrapper.NewStringConfig(memoryValue(overrides.rpcEndpoint, len(overrides.rpcEndpoint) > 0), defaultRpcEndpoint),
			rpcTimeout:   wrapper.NewDurationConfig(memory.NewConfig(time.Second), defaultRpcTimeout),
			rpcRateLimit: wrapper.NewFloat64Config(memoryValue(overrides.rpcRateLimit, overrides.rpcRateLimit > 0), defaultRpcRateLimit),
			logLevel:     wrapper.NewStringConfig(memory.NewConfig("debug"), defaultLogLevel),
			nftProgram:   wrapper.NewPublicKeyConfig(memoryValue(overrides.nftProgram, len(overrides.nftProgram) > 0), nft.ProgramKey),
			tokenProgram: wrapper.NewPublicKeyConfig(memoryValue(overrides.tokenProgram, len(overrides.tokenProgram) > 0), token.ProgramKey),
		}
	}
}

// memoryValue leaves the config unset unless ok, so the default applies.
func memoryValue(value interface{}, ok bool) config.Config {
	if !ok {
		return memory.NewConfig(nil)
	}
	return memory.NewConfig(value)
}
