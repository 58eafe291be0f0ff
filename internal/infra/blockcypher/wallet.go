package blockcypher

import (
	"context"
)

// CreateWallet registers a named wallet holding the given addresses.
func (c *Client) CreateWallet(ctx context.Context, name string, addresses []string) (Wallet, error) {
	var wallet Wallet
	err := c.post(ctx, "wallets", Wallet{Name: name, Addresses: addresses}, &wallet)
	if err != nil {
		return Wallet{}, err
	}

	return wallet, nil
}

// GetWallet fetches a wallet by name.
func (c *Client) GetWallet(ctx context.Context, name string) (Wallet, error) {
	var wallet Wallet
	if err := c.get(ctx, "wallets/"+name, nil, &wallet); err != nil {
		return Wallet{}, err
	}

	return wallet, nil
}

// ListWallets returns the wallet names owned by the API token.
func (c *Client) ListWallets(ctx context.Context) ([]string, error) {
	var list WalletList
	if err := c.get(ctx, "wallets", nil, &list); err != nil {
		return nil, err
	}

	return list.WalletNames, nil
}

// AddWalletAddresses appends addresses to an existing wallet.
func (c *Client) AddWalletAddresses(ctx context.Context, name string, addresses []string) (Wallet, error) {
	var wallet Wallet
	err := c.post(ctx, "wallets/"+name+"/addresses", WalletAddresses{Addresses: addresses}, &wallet)
	if err != nil {
		return Wallet{}, err
	}

	return wallet, nil
}

// RemoveWalletAddresses removes addresses from an existing wallet.
func (c *Client) RemoveWalletAddresses(ctx context.Context, name string, addresses []string) error {
	return c.delete(ctx, "wallets/"+name+"/addresses", WalletAddresses{Addresses: addresses})
}

// GenerateWalletAddress asks the provider to generate a fresh address and
// attach it to the wallet.
func (c *Client) GenerateWalletAddress(ctx context.Context, name string) (AddressKeychain, error) {
	var keychain AddressKeychain
	err := c.post(ctx, "wallets/"+name+"/addresses/generate", nil, &keychain)
	if err != nil {
		return AddressKeychain{}, err
	}

	return keychain, nil
}

// DeleteWallet removes the wallet (the underlying addresses keep existing
// on chain).
func (c *Client) DeleteWallet(ctx context.Context, name string) error {
	return c.delete(ctx, "wallets/"+name, nil)
}

// GenerateAddress asks the provider for a brand new keypair. No key
// material is derived locally.
func (c *Client) GenerateAddress(ctx context.Context) (AddressKeychain, error) {
	var keychain AddressKeychain
	if err := c.post(ctx, "addrs", nil, &keychain); err != nil {
		return AddressKeychain{}, err
	}

	return keychain, nil
}

// AddressBalance fetches the compact balance view of an address.
func (c *Client) AddressBalance(ctx context.Context, address string) (AddressBalance, error) {
	var balance AddressBalance
	if err := c.get(ctx, "addrs/"+address+"/balance", nil, &balance); err != nil {
		return AddressBalance{}, err
	}

	return balance, nil
}

// AddressDetails fetches the full view of an address including recent
// transaction references.
func (c *Client) AddressDetails(ctx context.Context, address string) (AddressDetails, error) {
	var details AddressDetails
	if err := c.get(ctx, "addrs/"+address, nil, &details); err != nil {
		return AddressDetails{}, err
	}

	return details, nil
}
