package gateway

import (
	"context"

	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/pkg/validator"
)

// WalletProvider covers wallet and address operations.
type WalletProvider interface {
	// CreateWallet registers a named wallet holding the given addresses.
	CreateWallet(ctx context.Context, name string, addresses []string) (blockcypher.Wallet, error)

	// GetWallet fetches a wallet by name.
	GetWallet(ctx context.Context, name string) (blockcypher.Wallet, error)

	// ListWallets returns the wallet names owned by the API token.
	ListWallets(ctx context.Context) ([]string, error)

	// AddWalletAddresses appends addresses to an existing wallet.
	AddWalletAddresses(ctx context.Context, name string, addresses []string) (blockcypher.Wallet, error)

	// RemoveWalletAddresses removes addresses from an existing wallet.
	RemoveWalletAddresses(ctx context.Context, name string, addresses []string) error

	// GenerateWalletAddress generates a fresh address inside a wallet.
	GenerateWalletAddress(ctx context.Context, name string) (blockcypher.AddressKeychain, error)

	// DeleteWallet removes a wallet registration.
	DeleteWallet(ctx context.Context, name string) error

	// GenerateAddress asks the provider for a brand new keypair.
	GenerateAddress(ctx context.Context) (blockcypher.AddressKeychain, error)

	// AddressBalance fetches the compact balance view of an address.
	AddressBalance(ctx context.Context, address string) (blockcypher.AddressBalance, error)

	// AddressDetails fetches the full view of an address.
	AddressDetails(ctx context.Context, address string) (blockcypher.AddressDetails, error)
}

// createWalletInput carries the validation rules for wallet creation. The
// provider caps wallet names at 25 characters.
type createWalletInput struct {
	Name      string   `validate:"required,max=25"`
	Addresses []string `validate:"required,min=1,dive,required"`
}

// CreateWallet validates and registers a named wallet from existing
// addresses. When the name is empty one is derived from the first address.
func (s *service) CreateWallet(ctx context.Context, network, name string, addresses []string) (blockcypher.Wallet, error) {
	if name == "" && len(addresses) > 0 {
		name = deriveWalletName(addresses[0])
	}

	input := createWalletInput{Name: name, Addresses: addresses}
	if err := validator.Validate(input); err != nil {
		return blockcypher.Wallet{}, err
	}

	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.Wallet{}, err
	}

	return provider.CreateWallet(ctx, input.Name, input.Addresses)
}

// deriveWalletName builds a deterministic wallet name from an address,
// keeping within the provider's 25-character cap.
func deriveWalletName(address string) string {
	const prefix = "wallet-"

	if len(address) > 10 {
		address = address[:10]
	}

	return prefix + address
}

// GetWallet fetches a wallet by name.
func (s *service) GetWallet(ctx context.Context, network, name string) (blockcypher.Wallet, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.Wallet{}, err
	}

	return provider.GetWallet(ctx, name)
}

// ListWallets returns the wallet names owned by the API token.
func (s *service) ListWallets(ctx context.Context, network string) ([]string, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return nil, err
	}

	return provider.ListWallets(ctx)
}

// AddWalletAddresses appends addresses to an existing wallet.
func (s *service) AddWalletAddresses(ctx context.Context, network, name string, addresses []string) (blockcypher.Wallet, error) {
	if err := validator.Validate(createWalletInput{Name: name, Addresses: addresses}); err != nil {
		return blockcypher.Wallet{}, err
	}

	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.Wallet{}, err
	}

	return provider.AddWalletAddresses(ctx, name, addresses)
}

// RemoveWalletAddresses removes addresses from an existing wallet.
func (s *service) RemoveWalletAddresses(ctx context.Context, network, name string, addresses []string) error {
	provider, err := s.providerFor(network)
	if err != nil {
		return err
	}

	return provider.RemoveWalletAddresses(ctx, name, addresses)
}

// GenerateWalletAddress generates a fresh address inside a wallet.
func (s *service) GenerateWalletAddress(ctx context.Context, network, name string) (blockcypher.AddressKeychain, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.AddressKeychain{}, err
	}

	return provider.GenerateWalletAddress(ctx, name)
}

// DeleteWallet removes a wallet registration.
func (s *service) DeleteWallet(ctx context.Context, network, name string) error {
	provider, err := s.providerFor(network)
	if err != nil {
		return err
	}

	return provider.DeleteWallet(ctx, name)
}

// GenerateAddress asks the provider for a fresh keypair.
func (s *service) GenerateAddress(ctx context.Context, network string) (blockcypher.AddressKeychain, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.AddressKeychain{}, err
	}

	return provider.GenerateAddress(ctx)
}

// AddressBalance returns the compact balance view of an address.
func (s *service) AddressBalance(ctx context.Context, network, address string) (blockcypher.AddressBalance, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.AddressBalance{}, err
	}

	return provider.AddressBalance(ctx, address)
}

// AddressDetails returns the full view of an address.
func (s *service) AddressDetails(ctx context.Context, network, address string) (blockcypher.AddressDetails, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.AddressDetails{}, err
	}

	return provider.AddressDetails(ctx, address)
}
