package blockcypher

import (
	"context"
	"net/url"
)

// NewTransaction builds a transaction skeleton from the given inputs and
// outputs. The provider selects UTXOs and computes fees.
func (c *Client) NewTransaction(ctx context.Context, req TxSkeletonRequest) (TxSkeleton, error) {
	var skeleton TxSkeleton
	if err := c.post(ctx, "txs/new", req, &skeleton); err != nil {
		return TxSkeleton{}, err
	}

	return skeleton, nil
}

// SignTransaction submits the skeleton together with the private keys for
// provider-side signing. No signature math happens locally.
func (c *Client) SignTransaction(ctx context.Context, skeleton TxSkeleton, privateKeys []string) (TxSkeleton, error) {
	var signed TxSkeleton
	err := c.post(ctx, "txs/sign", txSignRequest{Tx: skeleton, PrivateKeys: privateKeys}, &signed)
	if err != nil {
		return TxSkeleton{}, err
	}

	return signed, nil
}

// PushTransaction broadcasts a hex-encoded signed transaction.
func (c *Client) PushTransaction(ctx context.Context, txHex string) (Tx, error) {
	var pushed TxSkeleton
	if err := c.post(ctx, "txs/push", txPushRequest{Tx: txHex}, &pushed); err != nil {
		return Tx{}, err
	}

	return pushed.Tx, nil
}

// SendTransaction submits a fully signed skeleton for broadcasting.
func (c *Client) SendTransaction(ctx context.Context, skeleton TxSkeleton) (TxSkeleton, error) {
	var sent TxSkeleton
	if err := c.post(ctx, "txs/send", skeleton, &sent); err != nil {
		return TxSkeleton{}, err
	}

	return sent, nil
}

// GetTransaction fetches a transaction by hash. When includeConfidence is
// set the provider embeds its confidence heuristic for unconfirmed
// transactions.
func (c *Client) GetTransaction(ctx context.Context, txHash string, includeConfidence bool) (Tx, error) {
	var query url.Values
	if includeConfidence {
		query = url.Values{"includeConfidence": []string{"true"}}
	}

	var tx Tx
	if err := c.get(ctx, "txs/"+txHash, query, &tx); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// TransactionConfidence fetches the confidence heuristic for an
// unconfirmed transaction.
func (c *Client) TransactionConfidence(ctx context.Context, txHash string) (TxConfidence, error) {
	var confidence TxConfidence
	if err := c.get(ctx, "txs/"+txHash+"/confidence", nil, &confidence); err != nil {
		return TxConfidence{}, err
	}

	return confidence, nil
}

// DecodeTransaction asks the provider to decode a raw transaction hex.
func (c *Client) DecodeTransaction(ctx context.Context, txHex string) (Tx, error) {
	var tx Tx
	if err := c.post(ctx, "txs/decode", txPushRequest{Tx: txHex}, &tx); err != nil {
		return Tx{}, err
	}

	return tx, nil
}
