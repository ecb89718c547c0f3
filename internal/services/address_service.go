package services

import (
	"stickerpress/internal/domain"
	"stickerpress/internal/repos"
)

type AddressService struct {
	Repo *repos.AddressRepo
}

func NewAddressService(r *repos.AddressRepo) *AddressService { return &AddressService{Repo: r} }

func (s *AddressService) List(userID int64) ([]domain.Address, error) {
	return s.Repo.ListByUser(userID)
}

func (s *AddressService) Delete(userID, addressID int64) error {
	return s.Repo.Delete(userID, addressID)
}
