package controllers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/account-manager/backend/internal/controllers"
	"github.com/account-manager/backend/internal/models"
	"github.com/account-manager/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// csvUpload builds a multipart request body with a CSV file.
func csvUpload(t *testing.T, csv, importType string) (*bytes.Buffer, map[string]string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)

	require.NoError(t, writer.WriteField("import_type", importType))
	require.NoError(t, writer.Close())

	return &body, map[string]string{"Content-Type": writer.FormDataContentType()}
}

func (suite *TestSuiteStandard) TestImportBalances() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{Name: "Checking"})

	csv := fmt.Sprintf("account_id,snapshot_date,balance\n%s,2024-05-01,1234.56\n", account.ID)
	body, headers := csvUpload(suite.T(), csv, "balances")

	r := test.Request(suite.T(), http.MethodPost, "/imports/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var job controllers.ImportJob
	test.DecodeResponse(suite.T(), &r, &job)
	assert.Equal(suite.T(), models.ImportStatusCompleted, job.Status)
	assert.Equal(suite.T(), "Imported 1 rows.", job.Message)

	// The account balance is overwritten by the snapshot
	var updated models.Account
	require.NoError(suite.T(), models.DB.First(&updated, "id = ?", account.ID).Error)
	assert.True(suite.T(), decimal.NewFromFloat(1234.56).Equal(updated.CurrentBalance), "balance is %s", updated.CurrentBalance)
}

func (suite *TestSuiteStandard) TestImportBalancesUnknownAccountSkipped() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{Name: "Checking"})

	csv := fmt.Sprintf("account_id,snapshot_date,balance\n%s,2024-05-01,100\n%s,2024-05-01,50\n",
		"00000000-0000-0000-0000-000000000001", account.ID)
	body, headers := csvUpload(suite.T(), csv, "balances")

	r := test.Request(suite.T(), http.MethodPost, "/imports/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var job controllers.ImportJob
	test.DecodeResponse(suite.T(), &r, &job)
	assert.Equal(suite.T(), models.ImportStatusCompleted, job.Status)
	assert.Equal(suite.T(), "Imported 1 rows.", job.Message)
}

func (suite *TestSuiteStandard) TestImportTransactions() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{Name: "Checking"})

	csv := fmt.Sprintf("account_id,transaction_date,description,amount,category\n%s,2024-05-02,Coffee,-4.50,dining\n", account.ID)
	body, headers := csvUpload(suite.T(), csv, "transactions")

	r := test.Request(suite.T(), http.MethodPost, "/imports/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var count int64
	require.NoError(suite.T(), models.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestImportBadRowRollsBack() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{Name: "Checking"})

	// The second row fails, so the first must not be applied either
	csv := fmt.Sprintf("account_id,transaction_date,description,amount\n%s,2024-05-02,Coffee,-4.50\n%s,2024-05-03,Tea,not-a-number\n", account.ID, account.ID)
	body, headers := csvUpload(suite.T(), csv, "transactions")

	r := test.Request(suite.T(), http.MethodPost, "/imports/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var job controllers.ImportJob
	test.DecodeResponse(suite.T(), &r, &job)
	assert.Equal(suite.T(), models.ImportStatusFailed, job.Status)
	assert.Contains(suite.T(), job.Message, "row 2")

	var count int64
	require.NoError(suite.T(), models.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestImportInvalidType() {
	body, headers := csvUpload(suite.T(), "account_id,balance\n", "wishes")

	r := test.Request(suite.T(), http.MethodPost, "/imports/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var job controllers.ImportJob
	test.DecodeResponse(suite.T(), &r, &job)
	assert.Equal(suite.T(), models.ImportStatusFailed, job.Status)
	assert.Equal(suite.T(), models.ErrImportTypeInvalid.Error(), job.Message)
}

func (suite *TestSuiteStandard) TestImportNoFile() {
	r := test.Request(suite.T(), http.MethodPost, "/imports/csv", "", map[string]string{"Content-Type": "multipart/form-data; boundary=none"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
