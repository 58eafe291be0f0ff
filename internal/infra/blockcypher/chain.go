package blockcypher

import (
	"context"
	"fmt"
)

// ChainInfo fetches the current state of the network's blockchain.
func (c *Client) ChainInfo(ctx context.Context) (ChainInfo, error) {
	var info ChainInfo
	if err := c.get(ctx, "", nil, &info); err != nil {
		return ChainInfo{}, err
	}

	return info, nil
}

// LatestBlockHeight returns the height of the most recently mined block.
func (c *Client) LatestBlockHeight(ctx context.Context) (int64, error) {
	info, err := c.ChainInfo(ctx)
	if err != nil {
		return 0, err
	}

	return info.Height, nil
}

// BlockByHeight fetches a block by its height.
func (c *Client) BlockByHeight(ctx context.Context, height int64) (Block, error) {
	var block Block
	if err := c.get(ctx, fmt.Sprintf("blocks/%d", height), nil, &block); err != nil {
		return Block{}, err
	}

	return block, nil
}

// BlockByHash fetches a block by its hash.
func (c *Client) BlockByHash(ctx context.Context, hash string) (Block, error) {
	var block Block
	if err := c.get(ctx, "blocks/"+hash, nil, &block); err != nil {
		return Block{}, err
	}

	return block, nil
}

// FeeEstimates returns the provider's per-kilobyte fee levels derived from
// the chain endpoint.
func (c *Client) FeeEstimates(ctx context.Context) (FeeEstimates, error) {
	info, err := c.ChainInfo(ctx)
	if err != nil {
		return FeeEstimates{}, err
	}

	return FeeEstimates{
		HighPerKB:   info.HighFeePerKB,
		MediumPerKB: info.MediumFeePerKB,
		LowPerKB:    info.LowFeePerKB,
	}, nil
}
