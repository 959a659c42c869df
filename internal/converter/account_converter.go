package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// AccountToResponse converts an Account entity and its role to AccountResponse DTO
func AccountToResponse(account *entity.Account, role entity.Role) *dto.AccountResponse {
	if account == nil {
		return nil
	}

	return &dto.AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		FullName:  account.FullName,
		Role:      string(role),
		CreatedAt: account.CreatedAt,
	}
}
