// Package enrich monta as projeções de resposta a partir das entidades.
// Cada contexto recebe um tipo próprio: listas só enxergam UserSummary,
// comentários só enxergam CommentAuthor.
package enrich

import (
	"servilink/internal/catalog"
	"servilink/internal/domain"
)

// Summary é a projeção de usuário usada em listas.
func Summary(u domain.User) domain.UserSummary {
	return domain.UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		City:     u.City,
		Country:  u.Country,
		Avatar:   u.Avatar,
	}
}

// Detail acrescenta email e telefone. Só para o detalhe do serviço e o perfil.
func Detail(u domain.User) domain.UserDetail {
	return domain.UserDetail{
		UserSummary: Summary(u),
		Email:       u.Email,
		Phone:       u.Phone,
	}
}

// Author é a projeção mínima do autor de um comentário.
func Author(u domain.User) domain.CommentAuthor {
	return domain.CommentAuthor{ID: u.ID, FullName: u.FullName, Avatar: u.Avatar}
}

// Listing anexa a nota média e o resumo do dono. Dono ausente em users resulta em Owner nil.
func Listing(svc domain.Service, rating float64, users map[int64]domain.User) domain.ServiceListing {
	listing := domain.ServiceListing{Service: svc, Rating: rating}
	if owner, ok := users[svc.OwnerID]; ok {
		summary := Summary(owner)
		listing.Owner = &summary
	}
	return listing
}

// Listings aplica Listing preservando a ordem recebida.
func Listings(services []domain.Service, averages map[int64]float64, users map[int64]domain.User) []domain.ServiceListing {
	out := make([]domain.ServiceListing, 0, len(services))
	for _, svc := range services {
		out = append(out, Listing(svc, averages[svc.ID], users))
	}
	return out
}

// Comments anexa o autor de cada comentário.
func Comments(comments []domain.Comment, users map[int64]domain.User) []domain.CommentView {
	out := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		view := domain.CommentView{Comment: c}
		if u, ok := users[c.AuthorID]; ok {
			author := Author(u)
			view.Author = &author
		}
		out = append(out, view)
	}
	return out
}

// DetailView monta a resposta de detalhe: dono com contato e comentários com autor.
func DetailView(svc domain.Service, comments []domain.Comment, users map[int64]domain.User) domain.ServiceDetail {
	ratings := make([]int, 0, len(comments))
	for _, c := range comments {
		ratings = append(ratings, c.Rating)
	}

	detail := domain.ServiceDetail{
		Service:  svc,
		Rating:   catalog.AverageRating(ratings),
		Comments: Comments(comments, users),
	}
	if owner, ok := users[svc.OwnerID]; ok {
		d := Detail(owner)
		detail.Owner = &d
	}
	return detail
}

// Favorites anexa o serviço alvo, já em projeção de lista, a cada favorito.
func Favorites(favs []domain.Favorite, listings map[int64]domain.ServiceListing) []domain.FavoriteView {
	out := make([]domain.FavoriteView, 0, len(favs))
	for _, f := range favs {
		view := domain.FavoriteView{Favorite: f}
		if listing, ok := listings[f.ServiceID]; ok {
			l := listing
			view.Service = &l
		}
		out = append(out, view)
	}
	return out
}

// ProfileOf monta o perfil autenticado.
func ProfileOf(u domain.User, services []domain.ServiceListing, favorites []domain.FavoriteView) domain.Profile {
	if services == nil {
		services = []domain.ServiceListing{}
	}
	if favorites == nil {
		favorites = []domain.FavoriteView{}
	}
	return domain.Profile{
		UserDetail:   Detail(u),
		Role:         u.Role,
		RegisteredAt: u.RegisteredAt,
		IsActive:     u.IsActive,
		Services:     services,
		Favorites:    favorites,
	}
}

// UserIDs coleta, sem repetição, os IDs de donos e autores que uma projeção vai precisar.
func UserIDs(services []domain.Service, comments []domain.Comment) []int64 {
	seen := make(map[int64]struct{}, len(services)+len(comments))
	out := make([]int64, 0, len(services)+len(comments))
	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, s := range services {
		add(s.OwnerID)
	}
	for _, c := range comments {
		add(c.AuthorID)
	}
	return out
}
