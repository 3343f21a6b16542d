package handler

import (
	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

// --- Request → Service input ---

func toApartmentInput(req createApartmentRequest) ports.CreateApartmentInput {
	return ports.CreateApartmentInput{
		Number:              req.Number,
		Building:            req.Building,
		SocietyName:         req.SocietyName,
		TenantID:            req.TenantID,
		OwnerID:             req.OwnerID,
		Rent:                req.Rent,
		Status:              req.Status,
		Area:                req.Area,
		Amenities:           req.Amenities,
		LastMaintenanceDate: req.LastMaintenanceDate,
	}
}

func toApartmentPatch(req updateApartmentRequest) domain.ApartmentPatch {
	patch := domain.ApartmentPatch{
		Number:              req.Number,
		Building:            req.Building,
		SocietyName:         req.SocietyName,
		TenantID:            req.TenantID.Value,
		OwnerID:             req.OwnerID.Value,
		ClearTenant:         req.TenantID.cleared(),
		ClearOwner:          req.OwnerID.cleared(),
		Rent:                req.Rent,
		Area:                req.Area,
		Amenities:           req.Amenities,
		LastMaintenanceDate: req.LastMaintenanceDate,
	}
	if req.Status != nil {
		st := domain.ApartmentStatus(*req.Status)
		patch.Status = &st
	}
	return patch
}

func toPaymentInput(req createPaymentRequest) ports.CreatePaymentInput {
	return ports.CreatePaymentInput{
		ApartmentID: req.ApartmentID,
		TenantID:    req.TenantID,
		Amount:      req.Amount,
		Date:        req.Date,
		Type:        req.Type,
	}
}

func toUPIInput(req upiPaymentRequest) ports.UPIPaymentInput {
	return ports.UPIPaymentInput{
		UPIID:       req.UPIID,
		Amount:      req.Amount,
		Description: req.Description,
		ApartmentID: req.ApartmentID,
		Type:        req.Type,
	}
}

func toVisitorInput(req createVisitorRequest) ports.CreateVisitorInput {
	return ports.CreateVisitorInput{
		Name:          req.Name,
		Purpose:       req.Purpose,
		ContactNumber: req.ContactNumber,
		ApartmentID:   req.ApartmentID,
		ExpectedAt:    req.ExpectedAt,
	}
}
