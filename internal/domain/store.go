package domain

import "context"

// --- Contratos de persistência ---
// Toda operação Save* atribui o próximo ID do tipo e o timestamp do servidor.
// IDs são estritamente crescentes a partir de 1 e nunca reutilizados.

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	SaveUser(ctx context.Context, user User) (User, error)
	FindUserByID(ctx context.Context, id int64) (User, error)
	// FindUserByEmail compara o email sem diferenciar maiúsculas.
	FindUserByEmail(ctx context.Context, email string) (User, error)
	// FindUsersByIDs devolve os usuários encontrados indexados por ID; IDs ausentes são ignorados.
	FindUsersByIDs(ctx context.Context, ids []int64) (map[int64]User, error)
}

// ServiceRepository define o contrato de persistência para a entidade Service.
type ServiceRepository interface {
	SaveService(ctx context.Context, service Service) (Service, error)
	FindServiceByID(ctx context.Context, id int64) (Service, error)
	// FindAllServices devolve todos os serviços em ordem crescente de ID.
	FindAllServices(ctx context.Context) ([]Service, error)
	FindServicesByOwner(ctx context.Context, ownerID int64) ([]Service, error)
}

// CommentRepository define o contrato de persistência para a entidade Comment.
type CommentRepository interface {
	SaveComment(ctx context.Context, comment Comment) (Comment, error)
	FindCommentByID(ctx context.Context, id int64) (Comment, error)
	FindCommentsByService(ctx context.Context, serviceID int64) ([]Comment, error)
	// RatingsByService agrupa as notas de todos os comentários por serviço.
	RatingsByService(ctx context.Context) (map[int64][]int, error)
}

// FavoriteRepository define o contrato de persistência para a entidade Favorite.
type FavoriteRepository interface {
	// SaveFavorite falha com ConflictError se o par (usuário, serviço) já existir.
	SaveFavorite(ctx context.Context, favorite Favorite) (Favorite, error)
	// DeleteFavorite falha com NotFoundError se o par não existir.
	DeleteFavorite(ctx context.Context, userID, serviceID int64) error
	FindFavoritesByUser(ctx context.Context, userID int64) ([]Favorite, error)
	FavoriteExists(ctx context.Context, userID, serviceID int64) (bool, error)
}

// ReportRepository define o contrato de persistência para a entidade Report.
type ReportRepository interface {
	SaveReport(ctx context.Context, report Report) (Report, error)
	// FindAllReports devolve as denúncias em ordem crescente de ID (painel administrativo).
	FindAllReports(ctx context.Context) ([]Report, error)
}

// AccessRepository define o contrato de persistência dos registros de acesso.
type AccessRepository interface {
	SaveAccess(ctx context.Context, access AccessRecord) (AccessRecord, error)
	HasAccess(ctx context.Context, userID, serviceID int64) (bool, error)
}

// Store agrega todos os repositórios. É a "Entity Store" injetada em main.go.
type Store interface {
	UserRepository
	ServiceRepository
	CommentRepository
	FavoriteRepository
	ReportRepository
	AccessRepository
}
