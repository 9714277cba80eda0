// Package importer processes uploaded CSV files into balance snapshots
// and transactions.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/account-manager/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const (
	TypeBalances     = "balances"
	TypeTransactions = "transactions"
)

// Types lists the recognized import types.
var Types = []string{TypeBalances, TypeTransactions}

// Run processes one CSV upload and returns the import job that records its
// outcome.
//
// Each import is applied in a single database transaction. When any row
// fails, the whole batch is rolled back and a failed job carrying the error
// message is recorded instead. The returned error is reserved for failures
// to record the job itself.
func Run(db *gorm.DB, r io.Reader, importType, sourceName string) (models.ImportJob, error) {
	job := models.ImportJob{
		SourceName: sourceName,
		ImportType: importType,
		Status:     models.ImportStatusProcessing,
	}

	if !slices.Contains(Types, importType) {
		return failJob(db, job, models.ErrImportTypeInvalid)
	}

	err := db.Create(&job).Error
	if err != nil {
		return models.ImportJob{}, err
	}

	rows, err := readRows(r)
	if err != nil {
		return failJob(db, job, err)
	}

	var inserted int
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		switch importType {
		case TypeBalances:
			inserted, err = importBalances(tx, rows)
		case TypeTransactions:
			inserted, err = importTransactions(tx, rows)
		}
		return err
	})
	if err != nil {
		return failJob(db, job, err)
	}

	job.Status = models.ImportStatusCompleted
	job.Message = fmt.Sprintf("Imported %d rows.", inserted)
	err = db.Save(&job).Error
	if err != nil {
		return models.ImportJob{}, err
	}

	return job, nil
}

// row is one CSV record with access to its values by header name.
type row struct {
	number int
	fields map[string]string
}

func (r row) get(name string) (string, error) {
	v, ok := r.fields[name]
	if !ok {
		return "", fmt.Errorf("row %d: missing column %q", r.number, name)
	}
	return v, nil
}

func (r row) optional(name string) string {
	return r.fields[name]
}

func readRows(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var rows []row
	for number := 1; ; number++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", number, err)
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				fields[name] = record[i]
			}
		}
		rows = append(rows, row{number: number, fields: fields})
	}

	return rows, nil
}

// importBalances applies balance rows. Every row records a snapshot and
// overwrites the current balance of its account. Rows for unknown accounts
// are skipped.
func importBalances(tx *gorm.DB, rows []row) (int, error) {
	var inserted int

	for _, r := range rows {
		accountID, date, err := rowKey(r, "snapshot_date")
		if err != nil {
			return 0, err
		}

		raw, err := r.get("balance")
		if err != nil {
			return 0, err
		}
		balance, err := decimal.NewFromString(raw)
		if err != nil {
			return 0, fmt.Errorf("row %d: parsing balance: %w", r.number, err)
		}

		var account models.Account
		err = tx.First(&account, "id = ?", accountID).Error
		if errors.Is(err, models.ErrResourceNotFound) {
			continue
		}
		if err != nil {
			return 0, err
		}

		err = tx.Create(&models.BalanceSnapshot{
			AccountID:    account.ID,
			SnapshotDate: date,
			Balance:      balance,
		}).Error
		if err != nil {
			return 0, err
		}

		err = tx.Model(&account).Update("current_balance", balance).Error
		if err != nil {
			return 0, err
		}

		inserted++
	}

	return inserted, nil
}

// importTransactions applies transaction rows.
func importTransactions(tx *gorm.DB, rows []row) (int, error) {
	var inserted int

	for _, r := range rows {
		accountID, date, err := rowKey(r, "transaction_date")
		if err != nil {
			return 0, err
		}

		description, err := r.get("description")
		if err != nil {
			return 0, err
		}

		raw, err := r.get("amount")
		if err != nil {
			return 0, err
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return 0, fmt.Errorf("row %d: parsing amount: %w", r.number, err)
		}

		err = tx.Create(&models.Transaction{
			AccountID:       accountID,
			TransactionDate: date,
			Description:     description,
			Amount:          amount,
			Category:        r.optional("category"),
			Merchant:        r.optional("merchant"),
		}).Error
		if err != nil {
			return 0, err
		}

		inserted++
	}

	return inserted, nil
}

// rowKey parses the account ID and date columns shared by both row formats.
func rowKey(r row, dateColumn string) (uuid.UUID, time.Time, error) {
	raw, err := r.get("account_id")
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}

	accountID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("row %d: parsing account_id: %w", r.number, err)
	}

	raw, err = r.get(dateColumn)
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("row %d: parsing %s: %w", r.number, dateColumn, err)
	}

	return accountID, date, nil
}

// failJob records a failed import job with the error message. The job is
// created first when the failure happened before it could be stored.
func failJob(db *gorm.DB, job models.ImportJob, cause error) (models.ImportJob, error) {
	job.Status = models.ImportStatusFailed
	job.Message = cause.Error()

	var err error
	if job.ID == uuid.Nil {
		err = db.Create(&job).Error
	} else {
		err = db.Save(&job).Error
	}
	if err != nil {
		return models.ImportJob{}, err
	}

	return job, nil
}
