package service

import (
	"slices"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/errs"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
)

var (
	createBookRoles      = []model.Role{model.RoleCustomer, model.RoleAdmin}
	assignBookRoles      = []model.Role{model.RoleStoreManager, model.RoleAdmin}
	createBookAssetRoles = []model.Role{model.RoleStoreManager, model.RoleAdmin}
)

// authenticate returns the first customer whose username and role both match
// the claim. Nothing secret is checked: knowing a username and its role is
// enough to act as that customer.
func (s *Service) authenticate(cred model.Credentials) (model.Customer, error) {
	for _, c := range s.repo.Customers() {
		if c.Username == cred.Username && c.Role == cred.Role {
			return c, nil
		}
	}
	return model.Customer{}, errs.UnAuthorized("Invalid credentials")
}

func (s *Service) authorize(cred model.Credentials, allowed []model.Role, denied string) (model.Customer, error) {
	customer, err := s.authenticate(cred)
	if err != nil {
		return model.Customer{}, err
	}
	if !slices.Contains(allowed, customer.Role) {
		return model.Customer{}, errs.UnAuthorized(denied)
	}
	return customer, nil
}
