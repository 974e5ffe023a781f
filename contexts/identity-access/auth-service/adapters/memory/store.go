package memory

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"requisite/contexts/identity-access/auth-service/domain/entities"
	domainerrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/identity-access/auth-service/ports"
)

// Store is an in-memory adapter implementing the user, membership, and
// member-administration ports. It is intended for tests and local
// development wiring.
type Store struct {
	mu sync.RWMutex

	nextUserID   int
	nextMemberID int

	users       map[string]userRecord // keyed by domain "/" userName
	admins      map[int]struct{}
	orgMembers  map[int]entities.OrganizationMembership
	prodMembers map[int]entities.ProductMembership
}

type userRecord struct {
	user         entities.User
	passwordHash string
}

func NewStore() *Store {
	return &Store{
		nextUserID:   1,
		nextMemberID: 1,
		users:        make(map[string]userRecord),
		admins:       make(map[int]struct{}),
		orgMembers:   make(map[int]entities.OrganizationMembership),
		prodMembers:  make(map[int]entities.ProductMembership),
	}
}

func userKey(domain string, userName string) string {
	return strings.ToLower(domain) + "/" + strings.ToLower(userName)
}

// SeedUser registers a user with a bcrypt-hashed password and returns it.
func (s *Store) SeedUser(domain string, userName string, password string, revoked bool) entities.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := entities.User{
		ID:           s.nextUserID,
		Domain:       domain,
		UserName:     userName,
		EmailAddress: userName + "@requisite.dev",
		Revoked:      revoked,
	}
	s.nextUserID++
	s.users[userKey(domain, userName)] = userRecord{user: user, passwordHash: string(hash)}
	return user
}

// SeedSystemAdmin flags a user id as a system admin.
func (s *Store) SeedSystemAdmin(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[userID] = struct{}{}
}

// SeedOrganizationMembership grants a role on an organization.
func (s *Store) SeedOrganizationMembership(user entities.User, entity entities.EntityRef, role entities.OrganizationRole) entities.OrganizationMembership {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership := entities.OrganizationMembership{
		ID:     s.nextMemberID,
		User:   user,
		Entity: entity,
		Role:   role,
	}
	s.nextMemberID++
	s.orgMembers[membership.ID] = membership
	return membership
}

// SeedProductMembership grants a role on a product.
func (s *Store) SeedProductMembership(user entities.User, entity entities.EntityRef, role entities.ProductRole) entities.ProductMembership {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership := entities.ProductMembership{
		ID:     s.nextMemberID,
		User:   user,
		Entity: entity,
		Role:   role,
	}
	s.nextMemberID++
	s.prodMembers[membership.ID] = membership
	return membership
}

func (s *Store) GetCredential(_ context.Context, domain string, userName string) (ports.CredentialRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.users[userKey(domain, userName)]
	if !ok {
		return ports.CredentialRecord{}, false, nil
	}
	return ports.CredentialRecord{User: record.user, PasswordHash: record.passwordHash}, true, nil
}

func (s *Store) GetUser(_ context.Context, domain string, userName string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.users[userKey(domain, userName)]
	if !ok {
		return entities.User{}, false, nil
	}
	return record.user, true, nil
}

func (s *Store) CreateUser(_ context.Context, input ports.CreateUserInput) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userKey(input.Domain, input.UserName)
	if _, exists := s.users[key]; exists {
		return entities.User{}, domainerrors.ErrUserExists
	}

	user := entities.User{
		ID:           s.nextUserID,
		Domain:       input.Domain,
		UserName:     input.UserName,
		EmailAddress: input.EmailAddress,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	s.nextUserID++
	s.users[key] = userRecord{user: user, passwordHash: input.PasswordHash}
	return user, nil
}

func (s *Store) IsSystemAdmin(_ context.Context, userID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.admins[userID]
	return ok, nil
}

func (s *Store) ListOrganizationMemberships(_ context.Context, userID int) ([]entities.OrganizationMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.OrganizationMembership, 0)
	for _, membership := range s.orgMembers {
		if membership.User.ID == userID {
			items = append(items, membership)
		}
	}
	return items, nil
}

func (s *Store) ListProductMemberships(_ context.Context, userID int) ([]entities.ProductMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ProductMembership, 0)
	for _, membership := range s.prodMembers {
		if membership.User.ID == userID {
			items = append(items, membership)
		}
	}
	return items, nil
}

func (s *Store) ListOrganizationMembers(_ context.Context, orgID int) ([]entities.OrganizationMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.OrganizationMembership, 0)
	for _, membership := range s.orgMembers {
		if membership.Entity.ID == orgID {
			items = append(items, membership)
		}
	}
	return items, nil
}

func (s *Store) GetOrganizationMember(_ context.Context, memberID int) (entities.OrganizationMembership, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	membership, ok := s.orgMembers[memberID]
	return membership, ok, nil
}

func (s *Store) AddOrganizationMember(_ context.Context, input ports.OrganizationMemberInput) (entities.OrganizationMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.users[userKey(input.UserDomain, input.UserName)]
	if !ok {
		return entities.OrganizationMembership{}, domainerrors.ErrUserNotFound
	}

	membership := entities.OrganizationMembership{
		ID:     s.nextMemberID,
		User:   record.user,
		Entity: entities.EntityRef{ID: input.EntityID},
		Role:   input.Role,
	}
	s.nextMemberID++
	s.orgMembers[membership.ID] = membership
	return membership, nil
}

func (s *Store) UpdateOrganizationMember(_ context.Context, memberID int, role entities.OrganizationRole) (entities.OrganizationMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership, ok := s.orgMembers[memberID]
	if !ok {
		return entities.OrganizationMembership{}, domainerrors.ErrMemberNotFound
	}
	membership.Role = role
	s.orgMembers[memberID] = membership
	return membership, nil
}

func (s *Store) RemoveOrganizationMember(_ context.Context, memberID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgMembers[memberID]; !ok {
		return domainerrors.ErrMemberNotFound
	}
	delete(s.orgMembers, memberID)
	return nil
}

func (s *Store) ListProductMembers(_ context.Context, productID int) ([]entities.ProductMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ProductMembership, 0)
	for _, membership := range s.prodMembers {
		if membership.Entity.ID == productID {
			items = append(items, membership)
		}
	}
	return items, nil
}

func (s *Store) GetProductMember(_ context.Context, memberID int) (entities.ProductMembership, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	membership, ok := s.prodMembers[memberID]
	return membership, ok, nil
}

func (s *Store) AddProductMember(_ context.Context, input ports.ProductMemberInput) (entities.ProductMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.users[userKey(input.UserDomain, input.UserName)]
	if !ok {
		return entities.ProductMembership{}, domainerrors.ErrUserNotFound
	}

	membership := entities.ProductMembership{
		ID:     s.nextMemberID,
		User:   record.user,
		Entity: entities.EntityRef{ID: input.EntityID},
		Role:   input.Role,
	}
	s.nextMemberID++
	s.prodMembers[membership.ID] = membership
	return membership, nil
}

func (s *Store) UpdateProductMember(_ context.Context, memberID int, role entities.ProductRole) (entities.ProductMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership, ok := s.prodMembers[memberID]
	if !ok {
		return entities.ProductMembership{}, domainerrors.ErrMemberNotFound
	}
	membership.Role = role
	s.prodMembers[memberID] = membership
	return membership, nil
}

func (s *Store) RemoveProductMember(_ context.Context, memberID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prodMembers[memberID]; !ok {
		return domainerrors.ErrMemberNotFound
	}
	delete(s.prodMembers, memberID)
	return nil
}
