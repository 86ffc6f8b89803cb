// Package catalog filtra, ordena e classifica serviços do catálogo.
// As funções são puras: recebem os serviços e as notas já carregados pelo
// repositório, o que mantém a mesma semântica para qualquer backend.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
)

// FeaturedLimit é a quantidade de serviços em destaque.
const FeaturedLimit = 4

// SortOrder seleciona a ordenação da listagem.
type SortOrder string

const (
	SortRecent    SortOrder = "recent"
	SortRating    SortOrder = "rating"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// aliases aceitos por compatibilidade com o frontend antigo.
var sortAliases = map[string]SortOrder{
	"":             SortRecent,
	"recent":       SortRecent,
	"reciente":     SortRecent,
	"rating":       SortRating,
	"calificacion": SortRating,
	"price_asc":    SortPriceAsc,
	"precio_asc":   SortPriceAsc,
	"price_desc":   SortPriceDesc,
	"precio_desc":  SortPriceDesc,
}

// ParseSortOrder converte o parâmetro "sort"; vazio significa SortRecent.
func ParseSortOrder(raw string) (SortOrder, error) {
	order, ok := sortAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", apperror.NewValidationError(fmt.Sprintf("Ordenação '%s' não suportada.", raw))
	}
	return order, nil
}

// Filter define os critérios de busca. Todos são opcionais e combinados com AND.
type Filter struct {
	Category    string
	Subcategory string
	Location    string
	Search      string
	PriceMin    *float64
	PriceMax    *float64
	Sort        SortOrder
}

// Validate rejeita limites de preço negativos ou invertidos e ordenações desconhecidas.
func (f Filter) Validate() error {
	if f.PriceMin != nil && *f.PriceMin < 0 {
		return apperror.NewValidationError("price_min não pode ser negativo.")
	}
	if f.PriceMax != nil && *f.PriceMax < 0 {
		return apperror.NewValidationError("price_max não pode ser negativo.")
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return apperror.NewValidationError("price_min não pode ser maior que price_max.")
	}
	if _, err := ParseSortOrder(string(f.Sort)); err != nil {
		return err
	}
	return nil
}

// Matches informa se o serviço satisfaz todos os critérios informados.
func (f Filter) Matches(svc domain.Service) bool {
	if f.Category != "" && svc.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && svc.Subcategory != f.Subcategory {
		return false
	}
	if f.Location != "" && !containsFold(svc.Location, f.Location) {
		return false
	}
	if f.Search != "" && !containsFold(svc.Title, f.Search) && !containsFold(svc.Description, f.Search) {
		return false
	}
	if f.PriceMin != nil && svc.EstimatedPrice < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && svc.EstimatedPrice > *f.PriceMax {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// AverageRating é a média aritmética das notas; 0 quando não há notas.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// Averages calcula a nota média de cada serviço. Serviços sem comentários valem 0.
func Averages(services []domain.Service, ratings map[int64][]int) map[int64]float64 {
	out := make(map[int64]float64, len(services))
	for _, svc := range services {
		out[svc.ID] = AverageRating(ratings[svc.ID])
	}
	return out
}

// Apply filtra e depois ordena o conjunto completo. Não pagina.
//
// Desempates: recent → ID decrescente; rating, price_asc e price_desc → ID crescente.
func Apply(services []domain.Service, averages map[int64]float64, f Filter) ([]domain.Service, error) {
	order, err := ParseSortOrder(string(f.Sort))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		if f.Matches(svc) {
			out = append(out, svc)
		}
	}

	var less func(a, b domain.Service) bool
	switch order {
	case SortRecent:
		less = func(a, b domain.Service) bool {
			if !a.PublishedAt.Equal(b.PublishedAt) {
				return a.PublishedAt.After(b.PublishedAt)
			}
			return a.ID > b.ID
		}
	case SortRating:
		less = func(a, b domain.Service) bool {
			ra, rb := averages[a.ID], averages[b.ID]
			if ra != rb {
				return ra > rb
			}
			return a.ID < b.ID
		}
	case SortPriceAsc:
		less = func(a, b domain.Service) bool {
			if a.EstimatedPrice != b.EstimatedPrice {
				return a.EstimatedPrice < b.EstimatedPrice
			}
			return a.ID < b.ID
		}
	case SortPriceDesc:
		less = func(a, b domain.Service) bool {
			if a.EstimatedPrice != b.EstimatedPrice {
				return a.EstimatedPrice > b.EstimatedPrice
			}
			return a.ID < b.ID
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

// Featured devolve até FeaturedLimit serviços por nota média decrescente (desempate por ID crescente).
func Featured(services []domain.Service, averages map[int64]float64) []domain.Service {
	ranked, _ := Apply(services, averages, Filter{Sort: SortRating})
	if len(ranked) > FeaturedLimit {
		ranked = ranked[:FeaturedLimit]
	}
	return ranked
}
