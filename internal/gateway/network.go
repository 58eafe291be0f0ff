package gateway

import (
	"context"

	"github.com/satstack/paywatch/internal/infra/blockcypher"
)

// ChainProvider covers the chain-level read operations.
type ChainProvider interface {
	// LatestBlockHeight returns the height of the most recently mined block.
	LatestBlockHeight(ctx context.Context) (int64, error)

	// BlockByHeight fetches a block by its height.
	BlockByHeight(ctx context.Context, height int64) (blockcypher.Block, error)

	// FeeEstimates returns the provider's per-kilobyte fee levels.
	FeeEstimates(ctx context.Context) (blockcypher.FeeEstimates, error)
}

// LatestBlockHeight returns the current chain height of the given network.
func (s *service) LatestBlockHeight(ctx context.Context, network string) (int64, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return 0, err
	}

	return provider.LatestBlockHeight(ctx)
}

// BlockByHeight fetches a block by height from the given network.
func (s *service) BlockByHeight(ctx context.Context, network string, height int64) (blockcypher.Block, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.Block{}, err
	}

	return provider.BlockByHeight(ctx, height)
}

// FeeEstimates returns the provider's fee levels for the given network.
func (s *service) FeeEstimates(ctx context.Context, network string) (blockcypher.FeeEstimates, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.FeeEstimates{}, err
	}

	return provider.FeeEstimates(ctx)
}
