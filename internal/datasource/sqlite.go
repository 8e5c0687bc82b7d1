package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

const schema = `
CREATE TABLE analysts (
	pos  INTEGER PRIMARY KEY,
	id   TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL
);
CREATE TABLE cards (
	family   TEXT NOT NULL,
	pos      INTEGER NOT NULL,
	key      TEXT NOT NULL,
	title    TEXT NOT NULL,
	category TEXT NOT NULL,
	value    REAL NOT NULL,
	change   REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (family, pos)
);
CREATE TABLE trends (
	pos     INTEGER NOT NULL,
	quarter TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   REAL NOT NULL,
	PRIMARY KEY (pos, key)
);
CREATE TABLE questions (
	pos                   INTEGER PRIMARY KEY,
	analyst               TEXT NOT NULL,
	question              TEXT NOT NULL,
	quarter               TEXT NOT NULL,
	year                  INTEGER NOT NULL,
	net_positivity        REAL NOT NULL,
	net_negativity        REAL NOT NULL,
	stock_change_next_day REAL NOT NULL
);
`

// SQLiteFile reads a dataset from a SQLite fixture written by WriteSQLite.
type SQLiteFile struct {
	Path string
}

// Info implements Provider.
func (f SQLiteFile) Info() DataSource { return fileInfo(SourceTypeSQLite, f.Path) }

// Load implements Provider.
func (f SQLiteFile) Load(ctx context.Context) (model.Dataset, error) {
	if _, err := os.Stat(f.Path); err != nil {
		return model.Dataset{}, fmt.Errorf("cannot open database: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", f.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	var ds model.Dataset
	if ds.Analysts, err = loadAnalysts(ctx, db); err != nil {
		return model.Dataset{}, err
	}
	if ds.Positive, err = loadCards(ctx, db, "positive"); err != nil {
		return model.Dataset{}, err
	}
	if ds.Negative, err = loadCards(ctx, db, "negative"); err != nil {
		return model.Dataset{}, err
	}
	if ds.Trends, err = loadTrends(ctx, db); err != nil {
		return model.Dataset{}, err
	}
	if ds.Questions, err = loadQuestions(ctx, db); err != nil {
		return model.Dataset{}, err
	}
	ds, err = normalize(ds)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	return ds, nil
}

func loadAnalysts(ctx context.Context, db *sql.DB) ([]model.AnalystOption, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM analysts ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("query analysts: %w", err)
	}
	defer rows.Close()

	var out []model.AnalystOption
	for rows.Next() {
		var a model.AnalystOption
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan analyst: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysts: %w", err)
	}
	return out, nil
}

func loadCards(ctx context.Context, db *sql.DB, family string) ([]model.MetricCard, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT key, title, category, value, change FROM cards WHERE family = ? ORDER BY pos`, family)
	if err != nil {
		return nil, fmt.Errorf("query %s cards: %w", family, err)
	}
	defer rows.Close()

	var out []model.MetricCard
	for rows.Next() {
		var c model.MetricCard
		var category string
		if err := rows.Scan(&c.Key, &c.Title, &category, &c.Metric.Value, &c.Metric.Change); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		if c.Category, err = model.ParseMetricCategory(category); err != nil {
			return nil, fmt.Errorf("card %s: %w", c.Key, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}
	return out, nil
}

func loadTrends(ctx context.Context, db *sql.DB) ([]model.TrendData, error) {
	rows, err := db.QueryContext(ctx, `SELECT pos, quarter, key, value FROM trends ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("query trends: %w", err)
	}
	defer rows.Close()

	var out []model.TrendData
	last := -1
	for rows.Next() {
		var (
			pos          int
			quarter, key string
			value        float64
		)
		if err := rows.Scan(&pos, &quarter, &key, &value); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		if pos != last {
			out = append(out, model.TrendData{Quarter: quarter, Values: map[string]float64{}})
			last = pos
		}
		out[len(out)-1].Values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trends: %w", err)
	}
	return out, nil
}

func loadQuestions(ctx context.Context, db *sql.DB) ([]model.AnalystQuestion, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT analyst, question, quarter, year, net_positivity, net_negativity, stock_change_next_day
		FROM questions ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []model.AnalystQuestion
	for rows.Next() {
		var q model.AnalystQuestion
		if err := rows.Scan(&q.Analyst, &q.Question, &q.Quarter, &q.Year,
			&q.NetPositivity, &q.NetNegativity, &q.StockChangeNextDay); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return out, nil
}

// WriteSQLite creates a fixture database at path holding ds. An existing
// file is replaced.
func WriteSQLite(ctx context.Context, path string, ds model.Dataset) (err error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for i, a := range ds.Analysts {
		if _, err = tx.ExecContext(ctx, `INSERT INTO analysts (pos, id, name) VALUES (?, ?, ?)`, i, a.ID, a.Name); err != nil {
			return fmt.Errorf("insert analyst %s: %w", a.ID, err)
		}
	}
	for family, cards := range map[string][]model.MetricCard{"positive": ds.Positive, "negative": ds.Negative} {
		for i, c := range cards {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO cards (family, pos, key, title, category, value, change) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				family, i, c.Key, c.Title, c.Category.String(), c.Metric.Value, c.Metric.Change); err != nil {
				return fmt.Errorf("insert card %s: %w", c.Key, err)
			}
		}
	}
	for i, t := range ds.Trends {
		for k, v := range t.Values {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO trends (pos, quarter, key, value) VALUES (?, ?, ?, ?)`, i, t.Quarter, k, v); err != nil {
				return fmt.Errorf("insert trend %s/%s: %w", t.Quarter, k, err)
			}
		}
	}
	for i, q := range ds.Questions {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO questions (pos, analyst, question, quarter, year, net_positivity, net_negativity, stock_change_next_day)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, q.Analyst, q.Question, q.Quarter, q.Year, q.NetPositivity, q.NetNegativity, q.StockChangeNextDay); err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
