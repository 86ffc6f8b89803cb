// Package seed carrega os dados de demonstração do marketplace.
package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
)

// DemoPassword é a senha de todos os usuários de demonstração.
const DemoPassword = "password123"

// AdminEmail identifica o seed: se já existir, Load não faz nada.
const AdminEmail = "admin@servilink.com"

type demoUser struct {
	name, email, phone, city string
	role                     domain.UserRole
}

var demoUsers = []demoUser{
	{"Admin Servilink", AdminEmail, "123456789", "Madrid", domain.RoleAdmin},
	{"María López", "maria@example.com", "612345678", "Madrid", domain.RoleProvider},
	{"Carlos Ruiz", "carlos@example.com", "623456789", "Barcelona", domain.RoleProvider},
	{"Ana Martín", "ana@example.com", "634567890", "Valencia", domain.RoleProvider},
	{"Juan Cliente", "juan@example.com", "645678901", "Madrid", domain.RoleClient},
}

// Os serviços referenciam o dono pela posição em demoUsers.
var demoServices = []struct {
	owner int
	svc   domain.Service
}{
	{1, domain.Service{
		Title:          "Limpieza profesional de hogares",
		Description:    "Servicio de limpieza profunda para hogares y oficinas. Incluye limpieza de muebles, pisos, baños y cocina.",
		Category:       "limpieza",
		Subcategory:    "hogares",
		Location:       "Madrid, España",
		EstimatedPrice: 25,
		Schedule:       "Lunes a Viernes, 9:00 - 18:00",
		Available:      true,
		Images:         []string{"https://images.unsplash.com/photo-1581578731548-c64695cc6952?auto=format&fit=crop&w=600&h=350&q=80"},
	}},
	{2, domain.Service{
		Title:          "Electricista profesional",
		Description:    "Instalaciones eléctricas, reparaciones, mantenimiento y diagnóstico. Servicio de emergencia disponible.",
		Category:       "reparaciones",
		Subcategory:    "electricidad",
		Location:       "Barcelona, España",
		EstimatedPrice: 40,
		Schedule:       "Lunes a Domingo, 8:00 - 22:00",
		Available:      true,
		Images:         []string{"https://images.unsplash.com/photo-1621905251189-08b45d6a269e?auto=format&fit=crop&w=600&h=350&q=80"},
	}},
	{3, domain.Service{
		Title:          "Diseño gráfico profesional",
		Description:    "Diseño de logotipos, material publicitario, tarjetas, folletos y páginas web. Alta calidad y atención al detalle.",
		Category:       "tecnologia",
		Subcategory:    "diseño",
		Location:       "Valencia, España",
		EstimatedPrice: 50,
		Schedule:       "Lunes a Viernes, 10:00 - 19:00",
		Available:      true,
		Images:         []string{"https://images.unsplash.com/photo-1576091160550-2173dba999ef?auto=format&fit=crop&w=600&h=350&q=80"},
	}},
}

// Comentários do cliente de demonstração; cada um é precedido do acesso que o libera.
var demoComments = []struct {
	service int
	rating  int
	body    string
}{
	{0, 5, "Excelente servicio, muy profesional y puntual. Dejó mi casa impecable."},
	{1, 4, "Muy buen trabajo. Resolvió el problema eléctrico rápidamente."},
}

// Load grava os dados de demonstração pelo contrato domain.Store.
// hashCost é o custo do bcrypt (bcrypt.DefaultCost em produção).
func Load(ctx context.Context, store domain.Store, hashCost int, log logger.Logger) error {
	if _, err := store.FindUserByEmail(ctx, AdminEmail); err == nil {
		log.Info("Dados de demonstração já presentes.", nil)
		return nil
	} else if !apperror.IsNotFound(err) {
		return fmt.Errorf("verificando seed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), hashCost)
	if err != nil {
		return fmt.Errorf("gerando hash da senha de demonstração: %w", err)
	}

	users := make([]domain.User, 0, len(demoUsers))
	for _, u := range demoUsers {
		saved, err := store.SaveUser(ctx, domain.User{
			FullName:     u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			Country:      "España",
			City:         u.city,
			Phone:        u.phone,
			IsActive:     true,
			Avatar:       domain.DefaultAvatar,
		})
		if err != nil {
			return fmt.Errorf("salvando usuário %s: %w", u.email, err)
		}
		users = append(users, saved)
	}

	services := make([]domain.Service, 0, len(demoServices))
	for _, d := range demoServices {
		svc := d.svc
		svc.OwnerID = users[d.owner].ID
		saved, err := store.SaveService(ctx, svc)
		if err != nil {
			return fmt.Errorf("salvando serviço %q: %w", svc.Title, err)
		}
		services = append(services, saved)
	}

	client := users[len(users)-1]
	for _, c := range demoComments {
		serviceID := services[c.service].ID
		if _, err := store.SaveAccess(ctx, domain.AccessRecord{ServiceID: serviceID, UserID: client.ID}); err != nil {
			return fmt.Errorf("salvando acesso: %w", err)
		}
		if _, err := store.SaveComment(ctx, domain.Comment{ServiceID: serviceID, AuthorID: client.ID, Rating: c.rating, Body: c.body}); err != nil {
			return fmt.Errorf("salvando comentário: %w", err)
		}
	}

	if _, err := store.SaveFavorite(ctx, domain.Favorite{UserID: client.ID, ServiceID: services[0].ID}); err != nil {
		return fmt.Errorf("salvando favorito: %w", err)
	}

	log.Info("Dados de demonstração carregados.", map[string]interface{}{"users": len(users), "services": len(services)})
	return nil
}
