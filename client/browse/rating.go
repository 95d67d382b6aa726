package browse

import (
	"context"
	"errors"
	"sync"

	"github.com/aboodsamad/TravelMateV0/client/api"
	"github.com/aboodsamad/TravelMateV0/client/places"
)

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	ModalSubmitting
)

// Liker is the slice of the users client the rating modal needs.
type Liker interface {
	Like(ctx context.Context, placeID int64, rating *int) error
}

// RatingModal collects a 1-5 star value for a place and submits it.
// On success the owning controller re-runs its query so the table picks
// up the recalculated rating.
type RatingModal struct {
	mu         sync.Mutex
	liker      Liker
	controller *Controller

	state  ModalState
	place  places.Place
	rating int
	hover  int
	errMsg string
}

func NewRatingModal(liker Liker, controller *Controller) *RatingModal {
	return &RatingModal{liker: liker, controller: controller}
}

// Open shows the modal for a place. Any previously selected rating is
// discarded.
func (m *RatingModal) Open(p places.Place) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = ModalOpen
	m.place = p
	m.rating = 0
	m.hover = 0
	m.errMsg = ""
}

func (m *RatingModal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = ModalClosed
	m.hover = 0
}

func (m *RatingModal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *RatingModal) Place() places.Place {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.place
}

func (m *RatingModal) ErrMsg() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

func (m *RatingModal) Select(stars int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalOpen || stars < 1 || stars > 5 {
		return
	}
	m.rating = stars
}

// Hover sets the preview value. Zero clears it. It never touches the
// selected rating.
func (m *RatingModal) Hover(stars int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hover = stars
}

// Preview is the star count to highlight: the hovered value when present,
// the selected rating otherwise.
func (m *RatingModal) Preview() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hover > 0 {
		return m.hover
	}
	return m.rating
}

// Submit sends the selected rating. Without a selection it rejects
// locally and sends nothing. A server failure keeps the modal open with
// the server's message; success closes it and refreshes the table.
func (m *RatingModal) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.state != ModalOpen {
		m.mu.Unlock()
		return &api.ValidationError{Message: "no rating in progress"}
	}
	if m.rating == 0 {
		m.errMsg = "please select a rating"
		m.mu.Unlock()
		return &api.ValidationError{Message: "please select a rating"}
	}
	m.state = ModalSubmitting
	rating := m.rating
	placeID := m.place.ID
	m.mu.Unlock()

	err := m.liker.Like(ctx, placeID, &rating)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = ModalOpen
		m.errMsg = errMessage(err)
		return err
	}
	m.state = ModalClosed
	m.errMsg = ""
	if m.controller != nil {
		m.controller.Refresh(ctx)
	}
	return nil
}

// errMessage strips the status prefix so the modal shows the server's
// message alone.
func errMessage(err error) string {
	var fe *api.FetchError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
