package blockcypher

import "time"

// ChainInfo describes the current state of a blockchain.
//
// GET /
type ChainInfo struct {
	Name            string `json:"name"`
	Height          int64  `json:"height"`
	Hash            string `json:"hash"`
	Time            string `json:"time"`
	LatestURL       string `json:"latest_url"`
	PreviousHash    string `json:"previous_hash"`
	PeerCount       int    `json:"peer_count"`
	UnconfirmedTxs  int    `json:"unconfirmed_count"`
	HighFeePerKB    int64  `json:"high_fee_per_kb"`
	MediumFeePerKB  int64  `json:"medium_fee_per_kb"`
	LowFeePerKB     int64  `json:"low_fee_per_kb"`
	LastForkHeight  int64  `json:"last_fork_height"`
	LastForkHash    string `json:"last_fork_hash"`
}

// Block is a mined block.
//
// GET /blocks/{height|hash}
type Block struct {
	Hash         string    `json:"hash"`
	Height       int64     `json:"height"`
	Chain        string    `json:"chain"`
	Total        int64     `json:"total"`
	Fees         int64     `json:"fees"`
	Size         int64     `json:"size"`
	Time         time.Time `json:"time"`
	ReceivedTime time.Time `json:"received_time"`
	NTx          int       `json:"n_tx"`
	PrevBlock    string    `json:"prev_block"`
	MerkleRoot   string    `json:"mrkl_root"`
	TxIDs        []string  `json:"txids"`
}

// AddressBalance is the compact balance view of an address.
//
// GET /addrs/{address}/balance
type AddressBalance struct {
	Address            string `json:"address"`
	TotalReceived      int64  `json:"total_received"`
	TotalSent          int64  `json:"total_sent"`
	Balance            int64  `json:"balance"`
	UnconfirmedBalance int64  `json:"unconfirmed_balance"`
	FinalBalance       int64  `json:"final_balance"`
	NTx                int    `json:"n_tx"`
	UnconfirmedNTx     int    `json:"unconfirmed_n_tx"`
	FinalNTx           int    `json:"final_n_tx"`
}

// AddressDetails is the full view of an address including recent
// transaction references.
//
// GET /addrs/{address}
type AddressDetails struct {
	AddressBalance
	TxRefs []TxRef `json:"txrefs"`
}

// TxRef is a compact reference to a transaction touching an address.
type TxRef struct {
	TxHash        string `json:"tx_hash"`
	BlockHeight   int64  `json:"block_height"`
	TxInputN      int    `json:"tx_input_n"`
	TxOutputN     int    `json:"tx_output_n"`
	Value         int64  `json:"value"`
	Confirmations int64  `json:"confirmations"`
	DoubleSpend   bool   `json:"double_spend"`
}

// AddressKeychain is a freshly generated keypair. The private key material
// is produced by the provider and never touched beyond pass-through.
//
// POST /addrs
type AddressKeychain struct {
	Address string `json:"address"`
	Private string `json:"private"`
	Public  string `json:"public"`
	WIF     string `json:"wif"`
}

// Wallet is a named collection of addresses owned by the API token.
//
// POST /wallets, GET /wallets/{name}
type Wallet struct {
	Token     string   `json:"token,omitempty"`
	Name      string   `json:"name"`
	Addresses []string `json:"addresses"`
}

// WalletList enumerates the wallet names owned by the API token.
//
// GET /wallets
type WalletList struct {
	WalletNames []string `json:"wallet_names"`
}

// WalletAddresses lists the addresses of one wallet.
//
// GET /wallets/{name}/addresses
type WalletAddresses struct {
	Addresses []string `json:"addresses"`
}

// TxInput is a transaction input.
type TxInput struct {
	PrevHash    string   `json:"prev_hash,omitempty"`
	OutputIndex int      `json:"output_index,omitempty"`
	OutputValue int64    `json:"output_value,omitempty"`
	Addresses   []string `json:"addresses,omitempty"`
	ScriptType  string   `json:"script_type,omitempty"`
}

// TxOutput is a transaction output.
type TxOutput struct {
	Value      int64    `json:"value"`
	Addresses  []string `json:"addresses"`
	ScriptType string   `json:"script_type,omitempty"`
	Script     string   `json:"script,omitempty"`
}

// Tx is a full transaction.
//
// GET /txs/{hash}
type Tx struct {
	Hash          string     `json:"hash"`
	BlockHeight   int64      `json:"block_height"`
	Addresses     []string   `json:"addresses"`
	Total         int64      `json:"total"`
	Fees          int64      `json:"fees"`
	Size          int64      `json:"size"`
	Preference    string     `json:"preference,omitempty"`
	Confirmations int64      `json:"confirmations"`
	Confidence    float64    `json:"confidence,omitempty"`
	DoubleSpend   bool       `json:"double_spend"`
	Received      time.Time  `json:"received"`
	Inputs        []TxInput  `json:"inputs"`
	Outputs       []TxOutput `json:"outputs"`
	Hex           string     `json:"hex,omitempty"`
}

// TxSkeletonRequest is the body for building a new transaction skeleton.
//
// POST /txs/new
type TxSkeletonRequest struct {
	Inputs     []TxInput  `json:"inputs"`
	Outputs    []TxOutput `json:"outputs"`
	Preference string     `json:"preference,omitempty"`
	Fees       int64      `json:"fees,omitempty"`
}

// TxSkeleton is the partially built transaction returned by /txs/new and
// passed through /txs/sign. ToSign/Signatures/PubKeys carry the signing
// round-trip; the signing itself is delegated to the provider.
type TxSkeleton struct {
	Tx         Tx       `json:"tx"`
	ToSign     []string `json:"tosign"`
	Signatures []string `json:"signatures,omitempty"`
	PubKeys    []string `json:"pubkeys,omitempty"`
	Errors     []struct {
		Error string `json:"error"`
	} `json:"errors,omitempty"`
}

// txSignRequest is the body for the delegated signing endpoint.
//
// POST /txs/sign
type txSignRequest struct {
	Tx          TxSkeleton `json:"tx"`
	PrivateKeys []string   `json:"private_keys"`
	Signatures  []string   `json:"signatures,omitempty"`
}

// txPushRequest is the body for broadcasting a raw transaction.
//
// POST /txs/push, POST /txs/decode
type txPushRequest struct {
	Tx string `json:"tx"`
}

// TxConfidence is the provider's heuristic for an unconfirmed transaction.
//
// GET /txs/{hash}/confidence
type TxConfidence struct {
	TxHash      string  `json:"txhash"`
	Confidence  float64 `json:"confidence"`
	DoubleSpend bool    `json:"double_spend"`
	AgeMillis   int64   `json:"age_millis"`
	ReceiveCnt  int     `json:"receive_count"`
}

// ForwardingAddress is a provider-managed address auto-relaying incoming
// funds to a destination.
//
// POST /payments
type ForwardingAddress struct {
	ID             string `json:"id,omitempty"`
	Token          string `json:"token,omitempty"`
	Destination    string `json:"destination"`
	InputAddress   string `json:"input_address,omitempty"`
	CallbackURL    string `json:"callback_url,omitempty"`
	MiningFees     int64  `json:"mining_fees_satoshis,omitempty"`
	ProcessingFees *struct {
		Satoshis int64 `json:"satoshis"`
	} `json:"processing_fees,omitempty"`
}

// Webhook is a registered event subscription.
//
// POST /hooks, GET /hooks/{id}
type Webhook struct {
	ID            string  `json:"id,omitempty"`
	Token         string  `json:"token,omitempty"`
	Event         string  `json:"event"`
	URL           string  `json:"url"`
	Address       string  `json:"address,omitempty"`
	Hash          string  `json:"hash,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
	Confirmations int64   `json:"confirmations,omitempty"`
	CallbackErrs  int     `json:"callback_errors,omitempty"`
}

// FeeEstimates groups the per-kilobyte fee levels reported by the chain
// endpoint.
type FeeEstimates struct {
	HighPerKB   int64 `json:"high_fee_per_kb"`
	MediumPerKB int64 `json:"medium_fee_per_kb"`
	LowPerKB    int64 `json:"low_fee_per_kb"`
}
