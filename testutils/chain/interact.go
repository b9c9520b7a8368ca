package chain

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fullkomnun/protocols/verifier"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/consensys/gnark/backend/plonk"
)

// Arc32Schema defines a partial ARC32 schema
type Arc32Schema struct {
	Source struct {
		Approval string `json:"approval"`
		Clear    string `json:"clear"`
	} `json:"source"`
	State struct {
		Global struct {
			NumByteSlices uint64 `json:"num_byte_slices"`
			NumUints      uint64 `json:"num_uints"`
		} `json:"global"`
		Local struct {
			NumByteSlices uint64 `json:"num_byte_slices"`
			NumUints      uint64 `json:"num_uints"`
		} `json:"local"`
	} `json:"state"`
	Contract abi.Contract `json:"contract"`
}

// ReadArc32Schema reads an ARC32 schema from a JSON file
func ReadArc32Schema(filepath string) (*Arc32Schema, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("error opening schema file: %v", err)
	}
	defer file.Close()

	var schema Arc32Schema
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&schema); err != nil {
		return nil, fmt.Errorf("error decoding schema file: %v", err)
	}
	return &schema, nil
}

// SendTxn signs and sends a transaction to the network.
// If no account is provided, it uses the default localnet account.
// A local network must be running
func SendTxn(txn types.Transaction, account *crypto.Account) (
	*models.PendingTransactionInfoResponse, error) {

	algodClient := GetAlgodClient()
	var err error
	if account == nil {
		account, err = GetDefaultAccount()
		if err != nil {
			return nil, fmt.Errorf("failed to get localnet default account: %s",
				err)
		}
	}

	txid, stx, err := crypto.SignTransaction(account.PrivateKey, txn)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %v", err)
	}
	if _, err = algodClient.SendRawTransaction(stx).Do(
		context.Background()); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %v", err)
	}
	confirmedTxn, err := transaction.WaitForConfirmation(algodClient, txid,
		4, context.Background())
	if err != nil {
		return nil, fmt.Errorf("error waiting for confirmation: %v", err)
	}
	return &confirmedTxn, nil
}

// GetAppByName returns the first app created by creatorAddress whose global
// storage field `app_name` has value appName, or nil if none is found.
// A local network must be running
func GetAppByName(appName string, creatorAddress string) (
	*models.Application, error) {

	algodClient := GetAlgodClient()
	appsByCreator, err := algodClient.AccountInformation(creatorAddress).
		Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get account information: %v", err)
	}
	for _, app := range appsByCreator.CreatedApps {
		for _, global := range app.Params.GlobalState {
			key, _ := base64.StdEncoding.DecodeString(global.Key)
			value, _ := base64.StdEncoding.DecodeString(global.Value.Bytes)
			if bytes.Equal(key, []byte("app_name")) &&
				bytes.Equal(value, []byte(appName)) {
				return &app, nil
			}
		}
	}
	return nil, nil
}

// CompileTealFromFile reads a teal file and returns its compiled binary.
// A local network must be running
func CompileTealFromFile(tealFile string) ([]byte, error) {
	algodClient := GetAlgodClient()

	teal, err := os.ReadFile(tealFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from file: %v", tealFile, err)
	}
	result, err := algodClient.TealCompile(teal).Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %v", tealFile, err)
	}
	binary, err := base64.StdEncoding.DecodeString(result.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to decode compiled program: %v", err)
	}
	return binary, nil
}

// DeployVerifierAppIfNeeded looks for appName among the apps deployed by the
// default account and deploys it if missing, returning the app id.
//
// The function expects to find the files:
//   - dir + appName + ".approval.teal"
//   - dir + appName + ".clear.teal"
//   - dir + appName + ".arc32.json"
//
// A local network must be running
func DeployVerifierAppIfNeeded(appName string, dir string) (uint64, error) {
	algodClient := GetAlgodClient()

	creator, err := GetDefaultAccount()
	if err != nil {
		return 0, fmt.Errorf("failed to get localnet default account: %v", err)
	}
	app, err := GetAppByName(appName, creator.Address.String())
	if err != nil {
		return 0, fmt.Errorf("failed to read the blockchain: %v", err)
	}
	if app != nil {
		return app.Id, nil
	}

	approvalBin, err := CompileTealFromFile(filepath.Join(dir,
		appName+".approval.teal"))
	if err != nil {
		return 0, fmt.Errorf("failed to read approval program: %v", err)
	}
	clearBin, err := CompileTealFromFile(filepath.Join(dir,
		appName+".clear.teal"))
	if err != nil {
		return 0, fmt.Errorf("failed to read clear program: %v", err)
	}
	schema, err := ReadArc32Schema(filepath.Join(dir, appName+".arc32.json"))
	if err != nil {
		return 0, fmt.Errorf("failed to read arc32 schema: %v", err)
	}

	sp, err := algodClient.SuggestedParams().Do(context.Background())
	if err != nil {
		return 0, fmt.Errorf("failed to get suggested params: %v", err)
	}
	createMethod, err := schema.Contract.GetMethodByName("create")
	if err != nil {
		return 0, fmt.Errorf("failed to get create method: %v", err)
	}
	extraPages := uint32(len(approvalBin)) / 2048
	if extraPages > 3 {
		return 0, fmt.Errorf("approval program too large even for extra pages: "+
			"%d bytes", len(approvalBin))
	}
	txn, err := transaction.MakeApplicationCreateTxWithExtraPages(
		false, approvalBin, clearBin,
		types.StateSchema{NumUint: schema.State.Global.NumUints,
			NumByteSlice: schema.State.Global.NumByteSlices},
		types.StateSchema{NumUint: schema.State.Local.NumUints,
			NumByteSlice: schema.State.Local.NumByteSlices},
		[][]byte{createMethod.GetSelector(), []byte(appName)},
		nil, nil, nil,
		sp, creator.Address, nil,
		types.Digest{}, [32]byte{}, types.ZeroAddress, extraPages,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to make create txn: %v", err)
	}
	confirmedTxn, err := SendTxn(txn, creator)
	if err != nil {
		return 0, fmt.Errorf("error sending create transaction: %v", err)
	}
	return confirmedTxn.ApplicationIndex, nil
}

// SubmitSettlement calls the verifier app's verify method with the encoded
// public inputs, the proof blob and the flattened verifying key. If account
// is nil it uses the default localnet account; if simulate is true it
// simulates the call with the maximum extra opcode budget instead of sending
// it.
// A local network must be running
func SubmitSettlement(appId uint64, account *crypto.Account,
	schema *Arc32Schema, publicInputs []byte, proof []byte,
	vk plonk.VerifyingKey, simulate bool) (*transaction.ABIMethodResult, error) {

	algodClient := GetAlgodClient()
	var err error
	if account == nil {
		account, err = GetDefaultAccount()
		if err != nil {
			return nil, fmt.Errorf("failed to get localnet default account: %v",
				err)
		}
	}
	sp, err := algodClient.SuggestedParams().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get suggested tx params: %v", err)
	}
	verifyMethod, err := schema.Contract.GetMethodByName("verify")
	if err != nil {
		return nil, fmt.Errorf("failed to get verify method: %v", err)
	}
	methodArgs, err := verifier.SubmissionArgs(publicInputs, proof, vk)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %v", err)
	}

	var atc = transaction.AtomicTransactionComposer{}
	signer := transaction.BasicAccountTransactionSigner{Account: *account}
	err = atc.AddMethodCall(transaction.AddMethodCallParams{
		AppID:           appId,
		Sender:          account.Address,
		SuggestedParams: sp,
		OnComplete:      types.NoOpOC,
		Signer:          signer,
		Method:          verifyMethod,
		MethodArgs:      methodArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add method call: %v", err)
	}
	if simulate {
		simReq := models.SimulateRequest{ExtraOpcodeBudget: 320000}
		simRes, err := atc.Simulate(context.Background(), algodClient, simReq)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate verify txn: %v", err)
		}
		if simRes.SimulateResponse.TxnGroups[0].FailureMessage != "" {
			return nil, fmt.Errorf("transaction failed: %s",
				simRes.SimulateResponse.TxnGroups[0].FailureMessage)
		}
		abiResult := simRes.MethodResults[len(simRes.MethodResults)-1]
		return &abiResult, nil
	}
	atcRes, err := atc.Execute(algodClient, context.Background(), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to execute verify txn: %v", err)
	}
	return &atcRes.MethodResults[len(atcRes.MethodResults)-1], nil
}
