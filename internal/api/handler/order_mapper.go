package handler

import (
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createOrderRequest) ports.CreateOrderInput {
	return ports.CreateOrderInput{
		Title:       req.Title,
		Description: req.Description,
		Location: ports.LocationInput{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: req.Location.Address,
		},
		Priority:        req.Priority,
		AssignedToID:    req.AssignedToID,
		ReferenceImages: req.ReferenceImages,
		SLAHours:        req.SLAHours,
		Value:           req.Value,
		TechnicalNotes:  req.TechnicalNotes,
		RequiredNorms:   req.RequiredNorms,
	}
}

func toEditInput(id string, req editOrderRequest) ports.EditOrderInput {
	return ports.EditOrderInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Location: ports.LocationInput{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: req.Location.Address,
		},
		Priority:        req.Priority,
		AssignedToID:    req.AssignedToID,
		ReferenceImages: req.ReferenceImages,
		SLAHours:        req.SLAHours,
		Value:           req.Value,
		TechnicalNotes:  req.TechnicalNotes,
		RequiredNorms:   req.RequiredNorms,
		Version:         req.Version,
	}
}
