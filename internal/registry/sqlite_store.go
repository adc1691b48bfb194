package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the registry state. It implements both
// QuestionRepository and RoleRepository so a single file holds the whole
// contract state.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "registry.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			question_id INTEGER PRIMARY KEY,
			prompt TEXT NOT NULL,
			answer_hash TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS roles (
			identity TEXT PRIMARY KEY,
			power TEXT NOT NULL,
			granted_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_roles_power ON roles(power);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// AppendQuestion allocates the next id inside the insert transaction so
// ids stay dense and zero-based regardless of earlier failed inserts.
func (s *SQLiteStore) AppendQuestion(ctx context.Context, text string, answerHash AnswerHash) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var questionID uint64
	if err := tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(question_id) + 1, 0) FROM questions`,
	).Scan(&questionID); err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO questions (question_id, prompt, answer_hash, created_at_unix) VALUES (?, ?, ?, ?)`,
		questionID,
		text,
		answerHash.String(),
		time.Now().UTC().UnixNano(),
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return questionID, nil
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, questionID uint64) (Question, error) {
	var (
		question Question
		hashHex  string
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT question_id, prompt, answer_hash FROM questions WHERE question_id = ?`,
		questionID,
	).Scan(&question.QuestionID, &question.Text, &hashHex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, err
	}

	hash, err := ParseAnswerHash(hashHex)
	if err != nil {
		return Question{}, err
	}
	question.AnswerHash = hash
	return question, nil
}

func (s *SQLiteStore) ListQuestions(ctx context.Context) ([]PublicQuestion, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question_id, prompt FROM questions ORDER BY question_id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listing := make([]PublicQuestion, 0)
	for rows.Next() {
		var item PublicQuestion
		if err := rows.Scan(&item.QuestionID, &item.Text); err != nil {
			return nil, err
		}
		listing = append(listing, item)
	}

	return listing, rows.Err()
}

func (s *SQLiteStore) CountQuestions(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) PowerOf(ctx context.Context, identity string) (PowerLevel, error) {
	var power string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT power FROM roles WHERE identity = ?`,
		identity,
	).Scan(&power)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PowerUnregistered, nil
		}
		return PowerUnregistered, err
	}
	return ParsePowerLevel(power), nil
}

func (s *SQLiteStore) SetRole(ctx context.Context, identity string, power PowerLevel) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO roles (identity, power, granted_at_unix) VALUES (?, ?, ?)
		 ON CONFLICT(identity) DO UPDATE SET
			power = excluded.power,
			granted_at_unix = excluded.granted_at_unix`,
		identity,
		string(power),
		time.Now().UTC().UnixNano(),
	)
	return err
}

func (s *SQLiteStore) CountEducators(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM roles WHERE power = ?`,
		string(PowerEducator),
	).Scan(&count)
	return count, err
}

func (s *SQLiteStore) String() string {
	return fmt.Sprintf("sqlite_store(%T)", s.db)
}
