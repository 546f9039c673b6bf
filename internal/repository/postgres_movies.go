package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

var movieSortColumns = map[string]string{
	"":             "id",
	"id":           "id",
	"title":        "title",
	"release_date": "release_date",
}

type PostgresMovieRepository struct {
	db querier
}

func NewPostgresMovieRepository(db querier) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

const movieColumns = `id, title, description, genre, duration, poster_url, trailer_url,
	release_date, end_date, status, age_rating, director, movie_cast, created_at`

func scanMovie(row pgx.Row, movie *domain.Movie) error {
	return row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre,
		&movie.Duration,
		&movie.PosterUrl,
		&movie.TrailerUrl,
		&movie.ReleaseDate,
		&movie.EndDate,
		&movie.Status,
		&movie.AgeRating,
		&movie.Director,
		&movie.Cast,
		&movie.CreatedAt,
	)
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	column, ok := movieSortColumns[filters.SortColumn()]
	if !ok {
		return nil, nil, domain.InvalidRequest("unsupported sort column %q", filters.SortColumn())
	}

	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM movies
		WHERE ((to_tsvector('simple', title) @@ plainto_tsquery('simple', $1)
			OR to_tsvector('simple', description) @@ plainto_tsquery('simple', $1))
			OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, movieColumns, column, filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Genre,
			&movie.Duration,
			&movie.PosterUrl,
			&movie.TrailerUrl,
			&movie.ReleaseDate,
			&movie.EndDate,
			&movie.Status,
			&movie.AgeRating,
			&movie.Director,
			&movie.Cast,
			&movie.CreatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var movie domain.Movie

	err := scanMovie(p.db.QueryRow(ctx, query, id), &movie)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, description, genre, duration, poster_url, trailer_url,
			release_date, end_date, status, age_rating, director, movie_cast)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	cast := movie.Cast
	if cast == nil {
		cast = []string{}
	}

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.Duration,
		movie.PosterUrl,
		movie.TrailerUrl,
		movie.ReleaseDate,
		movie.EndDate,
		movie.Status,
		movie.AgeRating,
		movie.Director,
		cast).Scan(&movie.ID, &movie.CreatedAt)

	if err != nil {
		if pgErrorCode(err) == pgerrcode.CheckViolation {
			return domain.InvalidRequest("movie violates constraint %s", constraintName(err))
		}

		return err
	}

	return nil
}
