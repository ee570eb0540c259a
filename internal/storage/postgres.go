package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SaveSession(ctx context.Context, session models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, created_at, last_used_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET last_used_at = $4`

	if _, err := s.db.ExecContext(ctx, query, session.ID, session.UserID, session.CreatedAt, session.LastUsedAt); err != nil {
		return fmt.Errorf("error saving session: %v", err)
	}
	return nil
}

func (s *PostgresStorage) GetSession(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, user_id, created_at, last_used_at
		FROM sessions
		WHERE id = $1`

	session := &models.Session{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.CreatedAt,
		&session.LastUsedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying session: %v", err)
	}
	return session, nil
}

func (s *PostgresStorage) SaveMessage(ctx context.Context, msg models.ChatMessage) error {
	query := `
		INSERT INTO messages (id, session_id, message_index, role, content,
			chartable, has_insights, has_images, has_sources, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		msg.ID,
		msg.SessionID,
		msg.Index,
		msg.Role,
		msg.Content,
		msg.Chartable,
		msg.HasInsights,
		msg.HasImages,
		msg.HasSources,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving message: %v", err)
	}
	return nil
}

func (s *PostgresStorage) GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	query := `
		SELECT id, session_id, message_index, role, content,
			chartable, has_insights, has_images, has_sources, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY message_index ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %v", err)
	}
	defer rows.Close()

	var msgs []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		err := rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.Index,
			&msg.Role,
			&msg.Content,
			&msg.Chartable,
			&msg.HasInsights,
			&msg.HasImages,
			&msg.HasSources,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %v", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (s *PostgresStorage) SaveTabSelection(ctx context.Context, sessionID string, messageIndex int, tab models.Tab) error {
	query := `
		INSERT INTO tab_selections (session_id, message_index, tab)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, message_index) DO UPDATE SET tab = $3`

	if _, err := s.db.ExecContext(ctx, query, sessionID, messageIndex, string(tab)); err != nil {
		return fmt.Errorf("error saving tab selection: %v", err)
	}
	return nil
}

func (s *PostgresStorage) GetTabSelections(ctx context.Context, sessionID string) (map[int]models.Tab, error) {
	query := `
		SELECT message_index, tab
		FROM tab_selections
		WHERE session_id = $1`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying tab selections: %v", err)
	}
	defer rows.Close()

	out := make(map[int]models.Tab)
	for rows.Next() {
		var idx int
		var tab string
		if err := rows.Scan(&idx, &tab); err != nil {
			return nil, fmt.Errorf("error scanning tab selection: %v", err)
		}
		out[idx] = models.Tab(tab)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) MarkInsightViewed(ctx context.Context, userID, insightID string) error {
	query := `
		INSERT INTO viewed_insights (user_id, insight_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, insight_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, userID, insightID); err != nil {
		return fmt.Errorf("error marking insight viewed: %v", err)
	}
	return nil
}

func (s *PostgresStorage) ViewedInsights(ctx context.Context, userID string) (map[string]bool, error) {
	query := `
		SELECT insight_id
		FROM viewed_insights
		WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying viewed insights: %v", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning viewed insight: %v", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
