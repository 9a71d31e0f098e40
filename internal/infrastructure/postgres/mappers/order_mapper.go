package mappers

import (
	"github.com/arplanets/livesight-order-service/internal/domain"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/postgres/models"
)

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:               order.ID,
		Namespace:        order.Namespace,
		ProductID:        order.ProductID,
		ServiceType:      order.ServiceType,
		ServiceTypeID:    order.ServiceTypeID,
		AuthType:         order.AuthType,
		AuthTypeID:       order.AuthTypeID,
		UserBrowser:      order.UserBrowser,
		UserOS:           order.UserOS,
		UserDeviceType:   order.UserDeviceType,
		Status:           string(order.Status),
		CreatedAt:        order.CreatedAt,
		VerificationCode: order.VerificationCode,
		ActivatedAt:      order.ActivatedAt,
		ActivatedBy:      order.ActivatedBy,
		RedeemCode:       order.RedeemCode,
		Tags:             order.Tags,
		RedeemedAt:       order.RedeemedAt,
		AccessToken:      order.AccessToken,
		VoidedAt:         order.VoidedAt,
		VoidedBy:         order.VoidedBy,
		ReturnedAt:       order.ReturnedAt,
		ReturnedBy:       order.ReturnedBy,
		ExpiredAt:        order.ExpiredAt,
		UpdatedAt:        order.UpdatedAt,
		TTL:              order.TTL,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:               model.ID,
		Namespace:        model.Namespace,
		ProductID:        model.ProductID,
		ServiceType:      model.ServiceType,
		ServiceTypeID:    model.ServiceTypeID,
		AuthType:         model.AuthType,
		AuthTypeID:       model.AuthTypeID,
		UserBrowser:      model.UserBrowser,
		UserOS:           model.UserOS,
		UserDeviceType:   model.UserDeviceType,
		Status:           domain.ToOrderStatus(model.Status),
		CreatedAt:        model.CreatedAt,
		VerificationCode: model.VerificationCode,
		ActivatedAt:      model.ActivatedAt,
		ActivatedBy:      model.ActivatedBy,
		RedeemCode:       model.RedeemCode,
		Tags:             model.Tags,
		RedeemedAt:       model.RedeemedAt,
		AccessToken:      model.AccessToken,
		VoidedAt:         model.VoidedAt,
		VoidedBy:         model.VoidedBy,
		ReturnedAt:       model.ReturnedAt,
		ReturnedBy:       model.ReturnedBy,
		ExpiredAt:        model.ExpiredAt,
		UpdatedAt:        model.UpdatedAt,
		TTL:              model.TTL,
	}
}
