package dto

type CreateTreeDTO struct {
	Name           string  `json:"name" binding:"required"`
	ScientificName string  `json:"scientificName" binding:"required"`
	Image          string  `json:"image" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	Watering       string  `json:"watering" binding:"required"`
	Sunlight       string  `json:"sunlight" binding:"required"`
	SpecialCare    string  `json:"specialCare" binding:"required"`
	Pruning        string  `json:"pruning" binding:"required"`
	Fertilization  string  `json:"fertilization" binding:"required"`
	Price          float64 `json:"price" binding:"required,gt=0"`
}

// UpdateTreeDTO fields are optional pointers
type UpdateTreeDTO struct {
	Name           *string  `json:"name,omitempty" binding:"omitempty,min=1"`
	ScientificName *string  `json:"scientificName,omitempty"`
	Image          *string  `json:"image,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Watering       *string  `json:"watering,omitempty"`
	Sunlight       *string  `json:"sunlight,omitempty"`
	SpecialCare    *string  `json:"specialCare,omitempty"`
	Pruning        *string  `json:"pruning,omitempty"`
	Fertilization  *string  `json:"fertilization,omitempty"`
	Price          *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
}

type CreateBonsaiDTO struct {
	Name           string  `json:"name" binding:"required"`
	ScientificName string  `json:"scientificName" binding:"required"`
	Image          string  `json:"image" binding:"required"`
	Owner          string  `json:"owner" binding:"required"`
	Link           string  `json:"link" binding:"required"`
	Age            int     `json:"age" binding:"required,gte=0"`
	Description    string  `json:"description" binding:"required"`
	Watering       string  `json:"watering" binding:"required"`
	Sunlight       string  `json:"sunlight" binding:"required"`
	Pruning        string  `json:"pruning" binding:"required"`
	Fertilization  string  `json:"fertilization" binding:"required"`
	Price          float64 `json:"price" binding:"required,gt=0"`
}

type UpdateBonsaiDTO struct {
	Name           *string  `json:"name,omitempty" binding:"omitempty,min=1"`
	ScientificName *string  `json:"scientificName,omitempty"`
	Image          *string  `json:"image,omitempty"`
	Owner          *string  `json:"owner,omitempty"`
	Link           *string  `json:"link,omitempty"`
	Age            *int     `json:"age,omitempty" binding:"omitempty,gte=0"`
	Description    *string  `json:"description,omitempty"`
	Watering       *string  `json:"watering,omitempty"`
	Sunlight       *string  `json:"sunlight,omitempty"`
	Pruning        *string  `json:"pruning,omitempty"`
	Fertilization  *string  `json:"fertilization,omitempty"`
	Price          *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
}

type CreateProductDTO struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Use         string  `json:"use" binding:"required"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

type UpdateProductDTO struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=1"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,min=1"`
	Use         *string  `json:"use,omitempty" binding:"omitempty,min=1"`
	Image       *string  `json:"image,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
}

type CreateDiseaseDTO struct {
	Name      string   `json:"name" binding:"required"`
	Images    []string `json:"images"`
	Symptoms  []string `json:"symptoms" binding:"required,min=1"`
	Solutions []string `json:"solutions"`
	Category  string   `json:"category"`
	Tree      []string `json:"tree" binding:"required,min=1,dive,objectid"`
	Products  []string `json:"products" binding:"omitempty,dive,objectid"`
}

type UpdateDiseaseDTO struct {
	Name      *string   `json:"name,omitempty" binding:"omitempty,min=1"`
	Images    *[]string `json:"images,omitempty"`
	Symptoms  *[]string `json:"symptoms,omitempty" binding:"omitempty,min=1"`
	Solutions *[]string `json:"solutions,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Tree      *[]string `json:"tree,omitempty" binding:"omitempty,min=1,dive,objectid"`
	Products  *[]string `json:"products,omitempty" binding:"omitempty,dive,objectid"`
}
