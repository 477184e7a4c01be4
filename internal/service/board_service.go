package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"stickies/internal/canvas"
	"stickies/internal/domain"
	"stickies/internal/render"
)

// ─────────────────────────────────────────────────────────────
// Board Service: card actions outside of pointer gestures
// ─────────────────────────────────────────────────────────────

// BoardService owns the card operations that are not pointer gestures:
// explicit creation, content edits, deletes, export and import.
// Gestures go through canvas.Board against the same store.
type BoardService struct {
	store       *canvas.Store
	mu          sync.RWMutex // guards settings.Bounds
	settings    canvas.Settings
	defaultSize domain.Size
	emitter     EventEmitter
	log         *slog.Logger
	now         func() time.Time
}

// NewBoardService creates a BoardService.
func NewBoardService(store *canvas.Store, settings canvas.Settings, defaultSize domain.Size, emitter EventEmitter, log *slog.Logger) *BoardService {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	if log == nil {
		log = slog.Default()
	}
	if settings.NewID == nil {
		settings.NewID = canvas.NewCardID
	}
	return &BoardService{
		store:       store,
		settings:    settings,
		defaultSize: defaultSize,
		emitter:     emitter,
		log:         log,
		now:         time.Now,
	}
}

// Store returns the underlying store.
func (s *BoardService) Store() *canvas.Store {
	return s.store
}

// Settings returns the geometry rules in use.
func (s *BoardService) Settings() canvas.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// DefaultSize is the size new cards get when none is given, in grid units.
func (s *BoardService) DefaultSize() domain.Size {
	return s.defaultSize
}

// ListCards returns every card bottom to top.
func (s *BoardService) ListCards() []CardView {
	return Views(s.store.All())
}

// GetCard returns one card.
func (s *BoardService) GetCard(id string) (CardView, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return CardView{}, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	return viewOf(c), nil
}

// CardInput describes a card to create. Zero sizes fall back to the default
// card size; empty text to the default text.
type CardInput struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
}

// NewCard creates a default-sized card at p, the explicit "new card" action.
func (s *BoardService) NewCard(ctx context.Context, p domain.Point) (CardView, error) {
	return s.CreateCard(ctx, CardInput{X: p.X, Y: p.Y})
}

// CreateCard places a new card on top of every other card. The position is
// grid snapped and kept inside the canvas.
func (s *BoardService) CreateCard(ctx context.Context, in CardInput) (CardView, error) {
	c := domain.Card{
		ID:     s.settings.NewID(),
		Width:  in.Width,
		Height: in.Height,
		Text:   in.Text,
	}
	if c.Width <= 0 {
		c.Width = s.defaultSize.Width
	}
	if c.Height <= 0 {
		c.Height = s.defaultSize.Height
	}
	c.Width, c.Height = s.store.MinSize().Fit(c.Width, c.Height)
	if c.Text == "" {
		c.Text = s.settings.DefaultText
	}
	c.X, c.Y = s.place(domain.Point{X: in.X, Y: in.Y}, c)

	created, err := canvas.PlaceOnTop(s.store, c)
	if err != nil {
		return CardView{}, fmt.Errorf("create card: %w", err)
	}
	s.emitter.Emit(ctx, EventCardChanged, viewOf(created))
	return viewOf(created), nil
}

// MoveCard sets a card's position directly, snapped and kept in bounds.
func (s *BoardService) MoveCard(ctx context.Context, id string, p domain.Point) (CardView, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return CardView{}, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	x, y := s.place(p, c)
	return s.apply(ctx, id, domain.PositionPatch(x, y))
}

// ResizeCard sets a card's size in grid units; the minimum still applies.
func (s *BoardService) ResizeCard(ctx context.Context, id string, size domain.Size) (CardView, error) {
	if _, ok := s.store.Get(id); !ok {
		return CardView{}, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	return s.apply(ctx, id, domain.SizePatch(size.Width, size.Height))
}

// UpdateContent replaces a card's text.
func (s *BoardService) UpdateContent(ctx context.Context, id, text string) (CardView, error) {
	if _, ok := s.store.Get(id); !ok {
		return CardView{}, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	return s.apply(ctx, id, domain.TextPatch(text))
}

// BringToFront raises a card above every other card.
func (s *BoardService) BringToFront(ctx context.Context, id string) (CardView, error) {
	c, err := canvas.BringToFront(s.store, id)
	if err != nil {
		return CardView{}, fmt.Errorf("card %s: %w", id, err)
	}
	s.emitter.Emit(ctx, EventCardChanged, viewOf(c))
	return viewOf(c), nil
}

// DeleteCard removes a card once confirm approves. Deleting an unknown id
// succeeds without asking.
func (s *BoardService) DeleteCard(ctx context.Context, id string, confirm Confirmer) error {
	if _, ok := s.store.Get(id); !ok {
		return nil
	}
	ok, err := confirm.Confirm(ctx, deletePrompt(id))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return domain.ErrDeclined
	}
	if err := s.store.Remove(id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	s.emitter.Emit(ctx, EventCardRemoved, map[string]string{"id": id})
	return nil
}

// RenderCard renders the card's current text as HTML.
func (s *BoardService) RenderCard(id string) (string, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return "", fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	return render.Markdown(c.Text), nil
}

// ── Export / import ───────────────────────────────────────

// ExportArtifact is a downloadable copy of the persisted board.
type ExportArtifact struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
}

// ExportName is the file name for an export created at t. Names sort in
// creation order and differ down to the millisecond.
func ExportName(t time.Time) string {
	return "stickies-" + strings.Replace(t.Format("20060102-150405.000"), ".", "-", 1) + ".json"
}

// Export returns the persisted snapshot exactly as stored.
func (s *BoardService) Export() ExportArtifact {
	return ExportArtifact{Name: ExportName(s.now()), Data: []byte(s.store.Raw())}
}

// PreviewImport parses data and reports what importing it would change.
func (s *BoardService) PreviewImport(data []byte) (domain.Snapshot, canvas.ImportPlan, error) {
	imported, err := canvas.ParseSnapshot(data)
	if err != nil {
		return nil, canvas.ImportPlan{}, err
	}
	return imported, canvas.PlanImport(s.store.All(), imported), nil
}

// Import merges data into the board after confirm approves the counts.
// Malformed data or a declined prompt leave the board untouched.
func (s *BoardService) Import(ctx context.Context, data []byte, confirm Confirmer) (canvas.ImportPlan, error) {
	imported, plan, err := s.PreviewImport(data)
	if err != nil {
		return plan, err
	}
	ok, err := confirm.Confirm(ctx, importPrompt(plan))
	if err != nil {
		return plan, fmt.Errorf("confirm import: %w", err)
	}
	if !ok {
		return plan, domain.ErrDeclined
	}

	// merged into the board as stored at write time, so edits made while the
	// prompt was open survive, including those from other processes
	err = s.store.Update(func(live domain.Snapshot) domain.Snapshot {
		return canvas.Merge(live, imported)
	})
	if err != nil {
		return plan, fmt.Errorf("import: %w", err)
	}
	s.log.Info("board: imported", "total", plan.Total, "existing", plan.Existing, "new", plan.New)
	s.emitter.Emit(ctx, EventBoardReloaded, Views(s.store.All()))
	return plan, nil
}

// IsDeclined reports whether err is a declined confirmation.
func IsDeclined(err error) bool {
	return errors.Is(err, domain.ErrDeclined)
}

// ── helpers ────────────────────────────────────────────────

func (s *BoardService) apply(ctx context.Context, id string, patch domain.CardPatch) (CardView, error) {
	c, err := s.store.Upsert(id, patch)
	if err != nil {
		return CardView{}, fmt.Errorf("update card %s: %w", id, err)
	}
	s.emitter.Emit(ctx, EventCardChanged, viewOf(c))
	return viewOf(c), nil
}

// SetBounds changes the canvas area explicit moves and creations are kept in.
func (s *BoardService) SetBounds(b domain.Bounds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Bounds = b
}

// place snaps p to the grid and keeps card c inside the canvas from there.
func (s *BoardService) place(p domain.Point, c domain.Card) (float64, float64) {
	settings := s.Settings()
	snapped := canvas.SnapPoint(p, settings.GridUnit)
	r := c.Rect(settings.GridUnit)
	r.X, r.Y = snapped.X, snapped.Y
	r = settings.Bounds.ClampRect(r)
	return r.X, r.Y
}
