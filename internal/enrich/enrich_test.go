package enrich_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servilink/internal/domain"
	"servilink/internal/enrich"
)

var (
	maria = domain.User{
		ID: 2, FullName: "María López", Email: "maria@servilink.com", Phone: "+34 600 000 002",
		Role: domain.RoleProvider, City: "Madrid", Country: "España", Avatar: domain.DefaultAvatar,
		IsActive: true, RegisteredAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	juan = domain.User{
		ID: 5, FullName: "Juan Pérez", Email: "juan@servilink.com", Phone: "+34 600 000 005",
		Role: domain.RoleClient, City: "Madrid", Country: "España", Avatar: domain.DefaultAvatar,
	}
	users   = map[int64]domain.User{maria.ID: maria, juan.ID: juan}
	service = domain.Service{ID: 1, OwnerID: maria.ID, Title: "Limpieza profesional de hogares", EstimatedPrice: 25, Images: []string{}}
)

func TestListing_UsesSummaryProjection(t *testing.T) {
	listing := enrich.Listing(service, 4.5, users)

	require.NotNil(t, listing.Owner)
	assert.Equal(t, maria.FullName, listing.Owner.FullName)
	assert.Equal(t, 4.5, listing.Rating)

	raw, err := json.Marshal(listing)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), maria.Email)
	assert.NotContains(t, string(raw), maria.Phone)
}

func TestListing_MissingOwner(t *testing.T) {
	listing := enrich.Listing(domain.Service{ID: 9, OwnerID: 99}, 0, users)
	assert.Nil(t, listing.Owner)
}

func TestDetailView_OwnerHasContactButAuthorsDoNot(t *testing.T) {
	comments := []domain.Comment{
		{ID: 1, ServiceID: 1, AuthorID: juan.ID, Rating: 5, Body: "Excelente"},
		{ID: 2, ServiceID: 1, AuthorID: juan.ID, Rating: 4, Body: "Muy bien"},
		{ID: 3, ServiceID: 1, AuthorID: juan.ID, Rating: 3, Body: "Correcto"},
	}

	detail := enrich.DetailView(service, comments, users)

	assert.Equal(t, 4.0, detail.Rating)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, maria.Email, detail.Owner.Email)
	assert.Equal(t, maria.Phone, detail.Owner.Phone)

	require.Len(t, detail.Comments, 3)
	assert.Equal(t, juan.FullName, detail.Comments[0].Author.FullName)

	raw, err := json.Marshal(detail.Comments)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), juan.Email)
	assert.NotContains(t, string(raw), juan.Phone)
}

func TestDetailView_NoCommentsRatesZero(t *testing.T) {
	detail := enrich.DetailView(service, nil, users)

	assert.Equal(t, 0.0, detail.Rating)
	assert.NotNil(t, detail.Comments)
	assert.Empty(t, detail.Comments)
}

func TestFavorites_CarryServiceListing(t *testing.T) {
	favs := []domain.Favorite{{ID: 1, UserID: juan.ID, ServiceID: service.ID}, {ID: 2, UserID: juan.ID, ServiceID: 42}}

	listings := map[int64]domain.ServiceListing{service.ID: enrich.Listing(service, 5, users)}
	views := enrich.Favorites(favs, listings)

	require.Len(t, views, 2)
	require.NotNil(t, views[0].Service)
	assert.Equal(t, 5.0, views[0].Service.Rating)
	assert.Equal(t, maria.ID, views[0].Service.Owner.ID)
	assert.Nil(t, views[1].Service)

	raw, err := json.Marshal(views)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), maria.Email)
}

func TestProfileOf(t *testing.T) {
	profile := enrich.ProfileOf(maria, nil, nil)

	assert.Equal(t, maria.Email, profile.Email)
	assert.Equal(t, domain.RoleProvider, profile.Role)
	assert.True(t, profile.IsActive)
	assert.NotNil(t, profile.Services)
	assert.NotNil(t, profile.Favorites)
}

func TestUserIDs_Deduplicates(t *testing.T) {
	ids := enrich.UserIDs(
		[]domain.Service{{OwnerID: 2}, {OwnerID: 3}, {OwnerID: 2}},
		[]domain.Comment{{AuthorID: 5}, {AuthorID: 2}},
	)
	assert.Equal(t, []int64{2, 3, 5}, ids)
}
