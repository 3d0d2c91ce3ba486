package inpsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	storageErrors "github.com/danilovkiri/dk-go-wallet/internal/storage/v1/errors"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1/modelstorage"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

const (
	insertUserQuery         = "INSERT INTO users (id, email, api_key) VALUES ($1, $2, $3)"
	selectUserByIDQuery     = "SELECT id, email, api_key FROM users WHERE id = $1"
	selectUserByEmailQuery  = "SELECT id, email, api_key FROM users WHERE email = $1"
	selectUserByAPIKeyQuery = "SELECT id, email, api_key FROM users WHERE api_key = $1"
	truncateUsersQuery      = "TRUNCATE users CASCADE"

	insertWalletQuery          = "INSERT INTO wallets (address, amount, user_id) VALUES ($1, $2, $3)"
	selectWalletQuery          = "SELECT address, amount, user_id FROM wallets WHERE address = $1"
	selectWalletForUpdateQuery = "SELECT address, amount, user_id FROM wallets WHERE address = $1 FOR UPDATE"
	selectUserWalletsQuery     = "SELECT address, amount, user_id FROM wallets WHERE user_id = $1"
	updateBalanceQuery         = "UPDATE wallets SET amount = $1 WHERE address = $2"
	truncateWalletsQuery       = "TRUNCATE wallets CASCADE"

	insertTransactionQuery    = "INSERT INTO transactions (id, from_address, to_address, amount, fee) VALUES ($1, $2, $3, $4, $5)"
	selectTransactionQuery    = "SELECT id, from_address, to_address, amount, fee FROM transactions WHERE id = $1"
	selectTransactionsQuery   = "SELECT id, from_address, to_address, amount, fee FROM transactions"
	filterTransactionsQuery   = "SELECT id, from_address, to_address, amount, fee FROM transactions WHERE from_address = $1 OR to_address = $1"
	countTransactionsQuery    = "SELECT COUNT(*) FROM transactions"
	sumFeesQuery              = "SELECT COALESCE(SUM(fee), 0) FROM transactions"
	truncateTransactionsQuery = "TRUNCATE transactions"
)

const (
	createUsersTableQuery = `CREATE TABLE IF NOT EXISTS users (
		id      TEXT PRIMARY KEY,
		email   TEXT NOT NULL UNIQUE,
		api_key TEXT NOT NULL UNIQUE
	);`
	createWalletsTableQuery = `CREATE TABLE IF NOT EXISTS wallets (
		address TEXT   PRIMARY KEY,
		amount  BIGINT NOT NULL CHECK (amount >= 0),
		user_id TEXT   NOT NULL REFERENCES users (id)
	);`
	createTransactionsTableQuery = `CREATE TABLE IF NOT EXISTS transactions (
		id           TEXT   PRIMARY KEY,
		from_address TEXT   NOT NULL REFERENCES wallets (address),
		to_address   TEXT   NOT NULL REFERENCES wallets (address),
		amount       BIGINT NOT NULL CHECK (amount > 0),
		fee          BIGINT NOT NULL CHECK (fee >= 0)
	);`
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// queries implements the store contracts against a querier. With lockRows
// set, wallet reads lock the selected row until the surrounding transaction ends.
type queries struct {
	q        querier
	lockRows bool
}

// classify maps constraint violations onto storage errors.
func classify(err error, entity, id string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &storageErrors.AlreadyExistsError{Err: err, Entity: entity, ID: id}
		case pgerrcode.ForeignKeyViolation:
			return &storageErrors.NotFoundError{Err: err, Entity: "entity referenced by " + entity, ID: id}
		}
	}
	return &storageErrors.ExecutionPSQLError{Err: err}
}

func (qs queries) AddNewUser(ctx context.Context, user modelentity.User) error {
	_, err := qs.q.ExecContext(ctx, insertUserQuery, user.ID.String(), user.Email, user.APIKey)
	if err != nil {
		return classify(err, "user", user.ID.String())
	}
	return nil
}

func (qs queries) getUser(ctx context.Context, query, entity, key string) (modelentity.User, error) {
	var entry modelstorage.UserStorageEntry
	err := qs.q.QueryRowContext(ctx, query, key).Scan(&entry.ID, &entry.Email, &entry.APIKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modelentity.User{}, &storageErrors.NotFoundError{Err: err, Entity: entity, ID: key}
		}
		return modelentity.User{}, &storageErrors.ExecutionPSQLError{Err: err}
	}
	user, err := entry.ToEntity()
	if err != nil {
		return modelentity.User{}, &storageErrors.ScanningPSQLError{Err: err}
	}
	return user, nil
}

func (qs queries) GetUserByID(ctx context.Context, userID uuid.UUID) (modelentity.User, error) {
	return qs.getUser(ctx, selectUserByIDQuery, "user", userID.String())
}

func (qs queries) GetUserByEmail(ctx context.Context, email string) (modelentity.User, error) {
	return qs.getUser(ctx, selectUserByEmailQuery, "user with email", email)
}

func (qs queries) GetUserByAPIKey(ctx context.Context, apiKey string) (modelentity.User, error) {
	return qs.getUser(ctx, selectUserByAPIKeyQuery, "user with api key", apiKey)
}

func (qs queries) TearDownUsers(ctx context.Context) error {
	if _, err := qs.q.ExecContext(ctx, truncateUsersQuery); err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	return nil
}

func (qs queries) AddNewWallet(ctx context.Context, wallet modelentity.Wallet) error {
	_, err := qs.q.ExecContext(ctx, insertWalletQuery, wallet.Address, wallet.Balance, wallet.UserID.String())
	if err != nil {
		return classify(err, "wallet", wallet.Address)
	}
	return nil
}

func (qs queries) GetWallet(ctx context.Context, address string) (modelentity.Wallet, error) {
	query := selectWalletQuery
	if qs.lockRows {
		query = selectWalletForUpdateQuery
	}
	var entry modelstorage.WalletStorageEntry
	err := qs.q.QueryRowContext(ctx, query, address).Scan(&entry.Address, &entry.Amount, &entry.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modelentity.Wallet{}, &storageErrors.NotFoundError{Err: err, Entity: "wallet", ID: address}
		}
		return modelentity.Wallet{}, &storageErrors.ExecutionPSQLError{Err: err}
	}
	wallet, err := entry.ToEntity()
	if err != nil {
		return modelentity.Wallet{}, &storageErrors.ScanningPSQLError{Err: err}
	}
	return wallet, nil
}

func (qs queries) GetUserWallets(ctx context.Context, userID uuid.UUID) ([]modelentity.Wallet, error) {
	rows, err := qs.q.QueryContext(ctx, selectUserWalletsQuery, userID.String())
	if err != nil {
		return nil, &storageErrors.ExecutionPSQLError{Err: err}
	}
	defer rows.Close()
	wallets := make([]modelentity.Wallet, 0)
	for rows.Next() {
		var entry modelstorage.WalletStorageEntry
		if err = rows.Scan(&entry.Address, &entry.Amount, &entry.UserID); err != nil {
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		wallet, err := entry.ToEntity()
		if err != nil {
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		wallets = append(wallets, wallet)
	}
	if err = rows.Err(); err != nil {
		return nil, &storageErrors.ScanningPSQLError{Err: err}
	}
	return wallets, nil
}

func (qs queries) UpdateBalance(ctx context.Context, address string, balance int64) error {
	result, err := qs.q.ExecContext(ctx, updateBalanceQuery, balance, address)
	if err != nil {
		return classify(err, "wallet", address)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if affected == 0 {
		return &storageErrors.NotFoundError{Entity: "wallet", ID: address}
	}
	return nil
}

func (qs queries) TearDownWallets(ctx context.Context) error {
	if _, err := qs.q.ExecContext(ctx, truncateWalletsQuery); err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	return nil
}

func (qs queries) AddNewTransaction(ctx context.Context, transaction modelentity.Transaction) error {
	_, err := qs.q.ExecContext(ctx, insertTransactionQuery,
		transaction.ID.String(), transaction.FromAddress, transaction.ToAddress, transaction.Amount, transaction.Fee)
	if err != nil {
		return classify(err, "transaction", transaction.ID.String())
	}
	return nil
}

func (qs queries) GetTransaction(ctx context.Context, transactionID uuid.UUID) (modelentity.Transaction, error) {
	var entry modelstorage.TransactionStorageEntry
	err := qs.q.QueryRowContext(ctx, selectTransactionQuery, transactionID.String()).
		Scan(&entry.ID, &entry.FromAddress, &entry.ToAddress, &entry.Amount, &entry.Fee)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modelentity.Transaction{}, &storageErrors.NotFoundError{Err: err, Entity: "transaction", ID: transactionID.String()}
		}
		return modelentity.Transaction{}, &storageErrors.ExecutionPSQLError{Err: err}
	}
	transaction, err := entry.ToEntity()
	if err != nil {
		return modelentity.Transaction{}, &storageErrors.ScanningPSQLError{Err: err}
	}
	return transaction, nil
}

func (qs queries) selectTransactions(ctx context.Context, query string, args ...interface{}) ([]modelentity.Transaction, error) {
	rows, err := qs.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &storageErrors.ExecutionPSQLError{Err: err}
	}
	defer rows.Close()
	transactions := make([]modelentity.Transaction, 0)
	for rows.Next() {
		var entry modelstorage.TransactionStorageEntry
		if err = rows.Scan(&entry.ID, &entry.FromAddress, &entry.ToAddress, &entry.Amount, &entry.Fee); err != nil {
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		transaction, err := entry.ToEntity()
		if err != nil {
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		transactions = append(transactions, transaction)
	}
	if err = rows.Err(); err != nil {
		return nil, &storageErrors.ScanningPSQLError{Err: err}
	}
	return transactions, nil
}

func (qs queries) GetTransactions(ctx context.Context) ([]modelentity.Transaction, error) {
	return qs.selectTransactions(ctx, selectTransactionsQuery)
}

func (qs queries) FilterTransactions(ctx context.Context, address string) ([]modelentity.Transaction, error) {
	return qs.selectTransactions(ctx, filterTransactionsQuery, address)
}

func (qs queries) aggregate(ctx context.Context, query string) (int64, error) {
	var value int64
	if err := qs.q.QueryRowContext(ctx, query).Scan(&value); err != nil {
		return 0, &storageErrors.ExecutionPSQLError{Err: err}
	}
	return value, nil
}

func (qs queries) GetTransactionCount(ctx context.Context) (int64, error) {
	return qs.aggregate(ctx, countTransactionsQuery)
}

func (qs queries) GetProfit(ctx context.Context) (int64, error) {
	return qs.aggregate(ctx, sumFeesQuery)
}

func (qs queries) TearDownTransactions(ctx context.Context) error {
	if _, err := qs.q.ExecContext(ctx, truncateTransactionsQuery); err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	return nil
}
