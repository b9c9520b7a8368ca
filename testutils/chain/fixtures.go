package chain

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// CreateTestAsset creates an ASA standing in for a trade token and returns
// its id. The default localnet account is creator, manager and reserve.
// A local network must be running
func CreateTestAsset(unitName string, assetName string, total uint64) (
	uint64, error) {

	algodClient := GetAlgodClient()
	creator, err := GetDefaultAccount()
	if err != nil {
		return 0, fmt.Errorf("failed to get localnet default account: %v", err)
	}
	sp, err := algodClient.SuggestedParams().Do(context.Background())
	if err != nil {
		return 0, fmt.Errorf("failed to get suggested params: %v", err)
	}
	txn, err := transaction.MakeAssetCreateTxn(
		creator.Address.String(), nil, sp, total, 0, false,
		creator.Address.String(), creator.Address.String(), "", "",
		unitName, assetName, "", "",
	)
	if err != nil {
		return 0, fmt.Errorf("failed to make asset create txn: %v", err)
	}
	confirmedTxn, err := SendTxn(txn, creator)
	if err != nil {
		return 0, fmt.Errorf("error sending asset create transaction: %v", err)
	}
	return confirmedTxn.AssetIndex, nil
}

// OptInAsset opts account into the asset so it can hold a balance of it.
// A local network must be running
func OptInAsset(account *crypto.Account, assetId uint64) error {
	algodClient := GetAlgodClient()
	sp, err := algodClient.SuggestedParams().Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get suggested params: %v", err)
	}
	txn, err := transaction.MakeAssetAcceptanceTxn(
		account.Address.String(), nil, sp, assetId)
	if err != nil {
		return fmt.Errorf("failed to make asset opt-in txn: %v", err)
	}
	if _, err := SendTxn(txn, account); err != nil {
		return fmt.Errorf("error sending asset opt-in transaction: %v", err)
	}
	return nil
}

// SeedBalance transfers amount of the asset from the default account to the
// order owner so the settlement has sufficient funds.
// A local network must be running
func SeedBalance(owner string, assetId uint64, amount uint64) error {
	algodClient := GetAlgodClient()
	funder, err := GetDefaultAccount()
	if err != nil {
		return fmt.Errorf("failed to get localnet default account: %v", err)
	}
	sp, err := algodClient.SuggestedParams().Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get suggested params: %v", err)
	}
	txn, err := transaction.MakeAssetTransferTxn(
		funder.Address.String(), owner, amount, nil, sp, "", assetId)
	if err != nil {
		return fmt.Errorf("failed to make asset transfer txn: %v", err)
	}
	if _, err := SendTxn(txn, funder); err != nil {
		return fmt.Errorf("error sending asset transfer transaction: %v", err)
	}
	return nil
}

// EnsureFunded checks that address holds at least min microalgos and if not
// funds it with twice the amount from the default account.
// A local network must be running
func EnsureFunded(address string, min uint64) error {
	algodClient := GetAlgodClient()
	info, err := algodClient.AccountInformation(address).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get account information: %v", err)
	}
	if info.Amount >= min {
		return nil
	}
	funder, err := GetDefaultAccount()
	if err != nil {
		return fmt.Errorf("failed to get localnet default account: %v", err)
	}
	sp, err := algodClient.SuggestedParams().Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get suggested params: %v", err)
	}
	txn, err := transaction.MakePaymentTxn(funder.Address.String(), address,
		2*min, nil, types.ZeroAddress.String(), sp)
	if err != nil {
		return fmt.Errorf("failed to make payment txn: %v", err)
	}
	if _, err := SendTxn(txn, funder); err != nil {
		return fmt.Errorf("error sending payment transaction: %v", err)
	}
	return nil
}
