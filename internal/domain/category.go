package domain

// Category é uma entrada do registro fixo de categorias.
// Count é um valor estático de vitrine, não um agregado dos serviços cadastrados.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

var categories = []Category{
	{ID: "limpieza", Name: "Limpieza", Icon: "Trash2", Count: 124},
	{ID: "reparaciones", Name: "Reparaciones", Icon: "Tool", Count: 98},
	{ID: "salud", Name: "Salud y Bienestar", Icon: "Heart", Count: 87},
	{ID: "tecnologia", Name: "Tecnología", Icon: "Globe", Count: 76},
	{ID: "fotografia", Name: "Fotografía", Icon: "Camera", Count: 54},
	{ID: "educacion", Name: "Educación", Icon: "BookOpen", Count: 67},
}

// Categories devolve uma cópia do registro, na ordem de exibição.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
