package dto

type POIRequest struct {
	ID                 string   `json:"id" validate:"required,max=64"`
	Name               string   `json:"name" validate:"required,max=200"`
	Category           string   `json:"category" validate:"max=100"`
	Region             string   `json:"region" validate:"max=100"`
	Address            string   `json:"address" validate:"max=300"`
	Lat                *float64 `json:"lat" validate:"required_with=Lon,omitempty,gte=-90,lte=90"`
	Lon                *float64 `json:"lon" validate:"required_with=Lat,omitempty,gte=-180,lte=180"`
	VisitDurationHours *float64 `json:"visit_duration_hours" validate:"omitempty,gt=0,lte=24"`
}

type POIResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Category           string   `json:"category,omitempty"`
	Region             string   `json:"region,omitempty"`
	Address            string   `json:"address,omitempty"`
	Lat                *float64 `json:"lat"`
	Lon                *float64 `json:"lon"`
	VisitDurationHours *float64 `json:"visit_duration_hours,omitempty"`
}

type ListPOIsResponse struct {
	POIs []POIResponse `json:"pois"`
}
