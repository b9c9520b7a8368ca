// Package chain wraps the go-algorand-sdk for the test harness: localnet
// clients, the fixture account pool, token fixtures and balance seeding, and
// submission of settlement proofs to the on-chain verifier app.
package chain

import (
	"fmt"
	"log"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/client/kmd"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
)

// default parameters for the local network, override them if needed
var (
	ALGOD_URL   = "http://localhost:4001"
	ALGOD_TOKEN = strings.Repeat("a", 64)

	KMD_URL   = "http://localhost:4002"
	KMD_TOKEN = strings.Repeat("a", 64)

	KMD_WALLET_NAME     = "unencrypted-default-wallet"
	KMD_WALLET_PASSWORD = ""
)

func GetAlgodClient() *algod.Client {
	algodClient, err := algod.MakeClient(
		ALGOD_URL,
		ALGOD_TOKEN,
	)
	if err != nil {
		log.Fatalf("Failed to create algod client: %s", err)
	}
	return algodClient
}

func GetKmdClient() kmd.Client {
	kmdClient, err := kmd.MakeClient(
		KMD_URL,
		KMD_TOKEN,
	)
	if err != nil {
		log.Fatalf("Failed to create kmd client: %s", err)
	}
	return kmdClient
}

// GetSandboxAccounts exports the accounts of the localnet default wallet.
// A local network must be running with default parameters
func GetSandboxAccounts() ([]crypto.Account, error) {
	client := GetKmdClient()

	resp, err := client.ListWallets()
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %+v", err)
	}

	var walletId string
	for _, wallet := range resp.Wallets {
		if wallet.Name == KMD_WALLET_NAME {
			walletId = wallet.ID
		}
	}
	if walletId == "" {
		return nil, fmt.Errorf("no wallet named %s", KMD_WALLET_NAME)
	}

	whResp, err := client.InitWalletHandle(walletId, KMD_WALLET_PASSWORD)
	if err != nil {
		return nil, fmt.Errorf("failed to init wallet handle: %+v", err)
	}

	addrResp, err := client.ListKeys(whResp.WalletHandleToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %+v", err)
	}

	var accts []crypto.Account
	for _, addr := range addrResp.Addresses {
		expResp, err := client.ExportKey(whResp.WalletHandleToken,
			KMD_WALLET_PASSWORD, addr)
		if err != nil {
			return nil, fmt.Errorf("failed to export key: %+v", err)
		}
		acct, err := crypto.AccountFromPrivateKey(expResp.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create account from private key: %+v",
				err)
		}
		accts = append(accts, acct)
	}
	return accts, nil
}

// GetDefaultAccount returns the default account for the local network.
// A local network must be running with default parameters
func GetDefaultAccount() (*crypto.Account, error) {
	accts, err := GetSandboxAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to get localnet accounts: %s.\n"+
			"Make sure you are running a local Algorand network with default "+
			"parameters or have set up correct custom parameters", err)
	}
	return &accts[0], nil
}

// OwnerPool returns the addresses of the first n localnet accounts, the
// on-chain counterpart of the normalizer's owner pool.
// A local network must be running with default parameters
func OwnerPool(n int) ([]string, error) {
	accts, err := GetSandboxAccounts()
	if err != nil {
		return nil, err
	}
	if len(accts) < n {
		return nil, fmt.Errorf("localnet has %d accounts, need %d", len(accts), n)
	}
	pool := make([]string, n)
	for i := 0; i < n; i++ {
		pool[i] = accts[i].Address.String()
	}
	return pool, nil
}
