package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type movieRepo struct{ s *Store }

func (r *movieRepo) GetAll(ctx context.Context, filters domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	var movies []*domain.Movie

	err := r.s.view(func(d *data) error {
		term := strings.ToLower(filters.Term)

		for _, m := range d.movies {
			if term != "" &&
				!strings.Contains(strings.ToLower(m.Title), term) &&
				!strings.Contains(strings.ToLower(m.Description), term) {
				continue
			}

			movie := m
			movies = append(movies, &movie)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slices.SortFunc(movies, func(a, b *domain.Movie) int {
		var c int

		switch filters.SortColumn() {
		case "title":
			c = strings.Compare(a.Title, b.Title)
		case "release_date":
			c = a.ReleaseDate.Compare(b.ReleaseDate)
		}

		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}

		if filters.SortDirection() == "DESC" {
			return -c
		}

		return c
	})

	start, end := filters.Window(len(movies))
	metadata := domain.NewMetadata(len(movies), filters.Page, filters.PageSize)

	return slices.Clone(movies[start:end]), metadata, nil
}

func (r *movieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	var movie domain.Movie

	err := r.s.view(func(d *data) error {
		m, ok := d.movies[id]
		if !ok {
			return domain.ErrRecordNotFound
		}

		movie = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (r *movieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return r.s.view(func(d *data) error {
		movie.ID = d.next("movies")
		movie.CreatedAt = r.s.now()
		d.movies[movie.ID] = *movie

		return nil
	})
}

type cinemaRepo struct{ s *Store }

func (r *cinemaRepo) Create(ctx context.Context, cinema *domain.Cinema) error {
	return r.s.view(func(d *data) error {
		cinema.ID = d.next("cinemas")
		cinema.CreatedAt = r.s.now()
		d.cinemas[cinema.ID] = *cinema

		return nil
	})
}

func (r *cinemaRepo) GetAll(ctx context.Context) ([]domain.Cinema, error) {
	var cinemas []domain.Cinema

	err := r.s.view(func(d *data) error {
		cinemas = slices.Collect(maps.Values(d.cinemas))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(cinemas, func(a, b domain.Cinema) int { return cmp.Compare(a.ID, b.ID) })

	return cinemas, nil
}

func (r *cinemaRepo) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	var cinema domain.Cinema

	err := r.s.view(func(d *data) error {
		c, ok := d.cinemas[id]
		if !ok {
			return domain.ErrRecordNotFound
		}

		cinema = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &cinema, nil
}

type roomRepo struct{ s *Store }

func (r *roomRepo) Create(ctx context.Context, room *domain.Room) error {
	return r.s.view(func(d *data) error {
		cinema, ok := d.cinemas[room.CinemaID]
		if !ok {
			return domain.NotFound("cinema", room.CinemaID)
		}

		for _, existing := range d.rooms {
			if existing.CinemaID == room.CinemaID && existing.RoomNumber == room.RoomNumber {
				return domain.InvalidRequest("room %s already exists in cinema %d", room.RoomNumber, room.CinemaID)
			}
		}

		room.ID = d.next("rooms")
		room.CinemaName = cinema.Name
		room.CreatedAt = r.s.now()
		d.rooms[room.ID] = *room

		return nil
	})
}

func (r *roomRepo) GetById(ctx context.Context, id int) (*domain.Room, error) {
	var room domain.Room

	err := r.s.view(func(d *data) error {
		rm, ok := d.rooms[id]
		if !ok {
			return domain.ErrRecordNotFound
		}

		rm.CinemaName = d.cinemas[rm.CinemaID].Name
		room = rm

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &room, nil
}

// Lock is a plain read: transactions already hold the store lock.
func (r *roomRepo) Lock(ctx context.Context, id int) (*domain.Room, error) {
	return r.GetById(ctx, id)
}

func (r *roomRepo) GetByCinema(ctx context.Context, cinemaID int) ([]domain.Room, error) {
	var rooms []domain.Room

	err := r.s.view(func(d *data) error {
		for _, rm := range d.rooms {
			if rm.CinemaID == cinemaID {
				rm.CinemaName = d.cinemas[rm.CinemaID].Name
				rooms = append(rooms, rm)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(rooms, func(a, b domain.Room) int { return cmp.Compare(a.ID, b.ID) })

	return rooms, nil
}

type seatRepo struct{ s *Store }

func (r *seatRepo) CreateAll(ctx context.Context, seats []domain.Seat) error {
	return r.s.view(func(d *data) error {
		for i := range seats {
			seats[i].ID = d.next("seats")
			d.seats[seats[i].ID] = seats[i]
		}

		return nil
	})
}

func (r *seatRepo) GetByIds(ctx context.Context, ids []int) ([]domain.Seat, error) {
	var seats []domain.Seat

	err := r.s.view(func(d *data) error {
		for _, id := range ids {
			if seat, ok := d.seats[id]; ok {
				seats = append(seats, seat)
			}
		}

		return nil
	})

	return seats, err
}

func (r *seatRepo) GetByRoom(ctx context.Context, roomID int) ([]domain.Seat, error) {
	var seats []domain.Seat

	err := r.s.view(func(d *data) error {
		for _, seat := range d.seats {
			if seat.RoomID == roomID {
				seats = append(seats, seat)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(seats, func(a, b domain.Seat) int {
		return cmp.Or(strings.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
	})

	return seats, nil
}

type refreshmentRepo struct{ s *Store }

func (r *refreshmentRepo) Create(ctx context.Context, refreshment *domain.Refreshment) error {
	return r.s.view(func(d *data) error {
		refreshment.ID = d.next("refreshments")
		refreshment.CreatedAt = r.s.now()
		d.refreshments[refreshment.ID] = *refreshment

		return nil
	})
}

func (r *refreshmentRepo) GetAll(ctx context.Context, onlyCurrent bool) ([]domain.Refreshment, error) {
	var refreshments []domain.Refreshment

	err := r.s.view(func(d *data) error {
		for _, item := range d.refreshments {
			if onlyCurrent && !item.IsCurrent {
				continue
			}

			refreshments = append(refreshments, item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(refreshments, func(a, b domain.Refreshment) int { return cmp.Compare(a.ID, b.ID) })

	return refreshments, nil
}

func (r *refreshmentRepo) GetByIds(ctx context.Context, ids []int) ([]domain.Refreshment, error) {
	var refreshments []domain.Refreshment

	err := r.s.view(func(d *data) error {
		for _, id := range ids {
			if item, ok := d.refreshments[id]; ok {
				refreshments = append(refreshments, item)
			}
		}

		return nil
	})

	return refreshments, err
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.s.view(func(d *data) error {
		for _, existing := range d.users {
			if strings.EqualFold(existing.Email, user.Email) || existing.Username == user.Username {
				return domain.ErrUserAlreadyExists
			}
		}

		user.ID = d.next("users")
		user.CreatedAt = r.s.now()
		user.UpdatedAt = user.CreatedAt
		d.users[user.ID] = *user

		return nil
	})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User

	err := r.s.view(func(d *data) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				user = &u
				return nil
			}
		}

		return domain.ErrRecordNotFound
	})

	return user, err
}

func (r *userRepo) GetById(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User

	err := r.s.view(func(d *data) error {
		u, ok := d.users[id]
		if !ok {
			return domain.ErrRecordNotFound
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}
