package memrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
)

// Store implementa domain.Store em memória.
// Um único RWMutex serializa escritas (atribuição de ID + inserção) e permite
// leituras concorrentes que nunca observam um registro parcialmente gravado.
type Store struct {
	mu sync.RWMutex

	users     map[int64]domain.User
	services  map[int64]domain.Service
	comments  map[int64]domain.Comment
	favorites map[int64]domain.Favorite
	reports   map[int64]domain.Report
	accesses  map[int64]domain.AccessRecord

	// Contadores por tipo de entidade; nunca reutilizados, mesmo após exclusão.
	nextUserID     int64
	nextServiceID  int64
	nextCommentID  int64
	nextFavoriteID int64
	nextReportID   int64
	nextAccessID   int64

	now    func() time.Time
	logger logger.Logger
}

// NewStore cria um Store vazio. Deve ser construído uma vez e injetado nas camadas superiores.
func NewStore(log logger.Logger) *Store {
	return &Store{
		users:          make(map[int64]domain.User),
		services:       make(map[int64]domain.Service),
		comments:       make(map[int64]domain.Comment),
		favorites:      make(map[int64]domain.Favorite),
		reports:        make(map[int64]domain.Report),
		accesses:       make(map[int64]domain.AccessRecord),
		nextUserID:     1,
		nextServiceID:  1,
		nextCommentID:  1,
		nextFavoriteID: 1,
		nextReportID:   1,
		nextAccessID:   1,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         log,
	}
}

// --- Usuários ---

func (s *Store) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findUserByEmailLocked(user.Email); ok {
		return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", user.Email))
	}

	user.ID = s.nextUserID
	s.nextUserID++
	user.RegisteredAt = s.now()
	s.users[user.ID] = user

	s.logger.Debug("Usuário salvo em memória.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado.", id))
	}
	return user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.findUserByEmailLocked(email)
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
	}
	return user, nil
}

func (s *Store) FindUsersByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64]domain.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (s *Store) findUserByEmailLocked(email string) (domain.User, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return domain.User{}, false
}

// --- Serviços ---

func (s *Store) SaveService(ctx context.Context, service domain.Service) (domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[service.OwnerID]
	if !ok {
		return domain.Service{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado.", service.OwnerID))
	}
	if owner.Role != domain.RoleProvider {
		return domain.Service{}, apperror.NewForbiddenError("Somente provedores podem publicar serviços.")
	}

	service.ID = s.nextServiceID
	s.nextServiceID++
	service.PublishedAt = s.now()
	service.Images = append([]string(nil), service.Images...)
	s.services[service.ID] = service

	s.logger.Debug("Serviço salvo em memória.", map[string]interface{}{"service_id": service.ID, "owner_id": service.OwnerID})
	return cloneService(service), nil
}

func (s *Store) FindServiceByID(ctx context.Context, id int64) (domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	service, ok := s.services[id]
	if !ok {
		return domain.Service{}, apperror.NewNotFoundError(fmt.Sprintf("Serviço com ID %d não encontrado.", id))
	}
	return cloneService(service), nil
}

func (s *Store) FindAllServices(ctx context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, cloneService(svc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FindServicesByOwner(ctx context.Context, ownerID int64) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Service, 0)
	for _, svc := range s.services {
		if svc.OwnerID == ownerID {
			out = append(out, cloneService(svc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// cloneService evita que chamadores alterem o slice de imagens armazenado.
func cloneService(svc domain.Service) domain.Service {
	svc.Images = append([]string{}, svc.Images...)
	return svc
}

// --- Comentários ---

func (s *Store) SaveComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[comment.ServiceID]; !ok {
		return domain.Comment{}, apperror.NewNotFoundError(fmt.Sprintf("Serviço com ID %d não encontrado.", comment.ServiceID))
	}

	comment.ID = s.nextCommentID
	s.nextCommentID++
	comment.CreatedAt = s.now()
	s.comments[comment.ID] = comment
	return comment, nil
}

func (s *Store) FindCommentByID(ctx context.Context, id int64) (domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return domain.Comment{}, apperror.NewNotFoundError(fmt.Sprintf("Comentário com ID %d não encontrado.", id))
	}
	return comment, nil
}

func (s *Store) FindCommentsByService(ctx context.Context, serviceID int64) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Comment, 0)
	for _, c := range s.comments {
		if c.ServiceID == serviceID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RatingsByService(ctx context.Context) (map[int64][]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64][]int, len(s.services))
	for _, c := range s.comments {
		out[c.ServiceID] = append(out[c.ServiceID], c.Rating)
	}
	return out, nil
}

// --- Favoritos ---

// SaveFavorite verifica a unicidade do par e insere sob o mesmo lock.
func (s *Store) SaveFavorite(ctx context.Context, favorite domain.Favorite) (domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRefsLocked(favorite.UserID, favorite.ServiceID); err != nil {
		return domain.Favorite{}, err
	}
	if _, ok := s.findFavoriteLocked(favorite.UserID, favorite.ServiceID); ok {
		return domain.Favorite{}, apperror.NewConflictError("O serviço já está nos favoritos.")
	}

	favorite.ID = s.nextFavoriteID
	s.nextFavoriteID++
	favorite.CreatedAt = s.now()
	s.favorites[favorite.ID] = favorite
	return favorite, nil
}

func (s *Store) DeleteFavorite(ctx context.Context, userID, serviceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fav, ok := s.findFavoriteLocked(userID, serviceID)
	if !ok {
		return apperror.NewNotFoundError("O serviço não está nos favoritos.")
	}
	delete(s.favorites, fav.ID)
	return nil
}

func (s *Store) FindFavoritesByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Favorite, 0)
	for _, f := range s.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FavoriteExists(ctx context.Context, userID, serviceID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.findFavoriteLocked(userID, serviceID)
	return ok, nil
}

func (s *Store) findFavoriteLocked(userID, serviceID int64) (domain.Favorite, bool) {
	for _, f := range s.favorites {
		if f.UserID == userID && f.ServiceID == serviceID {
			return f, true
		}
	}
	return domain.Favorite{}, false
}

// --- Denúncias ---

func (s *Store) SaveReport(ctx context.Context, report domain.Report) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report.ID = s.nextReportID
	s.nextReportID++
	report.CreatedAt = s.now()
	s.reports[report.ID] = report
	return report, nil
}

func (s *Store) FindAllReports(ctx context.Context) ([]domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Acessos ---

func (s *Store) SaveAccess(ctx context.Context, access domain.AccessRecord) (domain.AccessRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRefsLocked(access.UserID, access.ServiceID); err != nil {
		return domain.AccessRecord{}, err
	}

	access.ID = s.nextAccessID
	s.nextAccessID++
	access.AccessedAt = s.now()
	s.accesses[access.ID] = access
	return access, nil
}

func (s *Store) HasAccess(ctx context.Context, userID, serviceID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accesses {
		if a.UserID == userID && a.ServiceID == serviceID {
			return true, nil
		}
	}
	return false, nil
}

var _ domain.Store = (*Store)(nil)

// checkRefsLocked reproduz as chaves estrangeiras de favorites e service_accesses.
func (s *Store) checkRefsLocked(userID, serviceID int64) error {
	if _, ok := s.users[userID]; !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado.", userID))
	}
	if _, ok := s.services[serviceID]; !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("Serviço com ID %d não encontrado.", serviceID))
	}
	return nil
}
