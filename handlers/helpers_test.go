package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"worksmis/milestone"
	"worksmis/models"
	"worksmis/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeWorkStore struct {
	mu       sync.Mutex
	nextID   uint
	packages map[uint]*models.WorkPackageGorm
	err      error
}

func newFakeWorkStore() *fakeWorkStore {
	return &fakeWorkStore{nextID: 1, packages: map[uint]*models.WorkPackageGorm{}}
}

func (s *fakeWorkStore) rows(wpID uint, comps []milestone.Component) ([]models.WorkComponentGorm, []uint) {
	var out []models.WorkComponentGorm
	var ids []uint
	for _, c := range comps {
		row := models.NewWorkComponentGorm(wpID, c, milestone.Validate(c, milestone.FormSubmit).Valid)
		row.ID = s.nextID
		s.nextID++
		out = append(out, row)
		ids = append(ids, row.ID)
	}
	return out, ids
}

func (s *fakeWorkStore) Create(_ context.Context, wp *models.WorkPackageGorm, comps []milestone.Component) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	wp.ID = s.nextID
	s.nextID++
	if wp.ReferenceCode == "" {
		wp.ReferenceCode = repository.NewReferenceCode()
	}
	stored := *wp
	stored.Components, _ = s.rows(wp.ID, comps)
	s.packages[wp.ID] = &stored
	return wp.ID, nil
}

func (s *fakeWorkStore) AddComponents(_ context.Context, id uint, comps []milestone.Component) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wp, ok := s.packages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rows, ids := s.rows(id, comps)
	wp.Components = append(wp.Components, rows...)
	return ids, nil
}

func (s *fakeWorkStore) Get(_ context.Context, id uint) (*models.WorkPackageGorm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	wp, ok := s.packages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *wp
	return &cp, nil
}

func (s *fakeWorkStore) List(_ context.Context, page, pageSize int) ([]models.WorkPackageGorm, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WorkPackageGorm
	for id := uint(1); id < s.nextID; id++ {
		if wp, ok := s.packages[id]; ok {
			out = append(out, *wp)
		}
	}
	total := int64(len(out))
	start := (page - 1) * pageSize
	if start > len(out) {
		start = len(out)
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (s *fakeWorkStore) Components(_ context.Context, id uint) ([]models.WorkComponentGorm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wp, ok := s.packages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return wp.Components, nil
}

func (s *fakeWorkStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packages[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.packages, id)
	return nil
}

type fakeUnits struct {
	known map[string]bool
	err   error
}

func (u fakeUnits) Missing(_ context.Context, names []string) ([]string, error) {
	if u.err != nil {
		return nil, u.err
	}
	var missing []string
	for _, n := range names {
		if !u.known[n] {
			missing = append(missing, n)
		}
	}
	return missing, nil
}

type notification struct {
	wp    models.WorkPackageGorm
	comps []milestone.Component
}

type chanNotifier chan notification

func (n chanNotifier) WorkPackageCreated(wp models.WorkPackageGorm, comps []milestone.Component) error {
	n <- notification{wp: wp, comps: comps}
	return nil
}

func (n chanNotifier) wait(t *testing.T) notification {
	t.Helper()
	select {
	case got := <-n:
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
		return notification{}
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
