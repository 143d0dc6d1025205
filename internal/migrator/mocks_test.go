package migrator

import (
	"context"

	"github.com/lemarche/marketplace-backend/internal/adapter/legacy"
	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/siae"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// Hand-written test doubles. Unset funcs return zero values so each test
// only wires the calls its phase makes.

type sourceMock struct {
	DirectoriesFunc                 func(ctx context.Context) ([]legacy.DirectoryRow, error)
	DirectoryImagesFunc             func(ctx context.Context) ([]legacy.DirectoryImageRow, error)
	NetworksFunc                    func(ctx context.Context) ([]legacy.NetworkRow, error)
	DirectoryNetworksFunc           func(ctx context.Context) ([]legacy.DirectoryNetworkRow, error)
	ListingCategoriesFunc           func(ctx context.Context) ([]legacy.ListingCategoryRow, error)
	ListingCategoryTranslationsFunc func(ctx context.Context) ([]legacy.ListingCategoryTranslationRow, error)
	DirectoryListingCategoriesFunc  func(ctx context.Context) ([]legacy.DirectoryListingCategoryRow, error)
	DirectoryOffersFunc             func(ctx context.Context) ([]legacy.DirectoryOfferRow, error)
	DirectoryLabelsFunc             func(ctx context.Context) ([]legacy.DirectoryLabelRow, error)
	DirectoryClientImagesFunc       func(ctx context.Context) ([]legacy.DirectoryClientImageRow, error)
	ListingsFunc                    func(ctx context.Context) ([]legacy.ListingRow, error)
	ListingTranslationsFunc         func(ctx context.Context) ([]legacy.ListingTranslationRow, error)
	ListingImagesFunc               func(ctx context.Context) ([]legacy.ListingImageRow, error)
	UsersFunc                       func(ctx context.Context) ([]legacy.UserRow, error)
	UserImagesFunc                  func(ctx context.Context) ([]legacy.UserImageRow, error)
	DirectoryUsersFunc              func(ctx context.Context) ([]legacy.DirectoryUserRow, error)
}

func (m *sourceMock) Directories(ctx context.Context) ([]legacy.DirectoryRow, error) {
	if m.DirectoriesFunc == nil {
		return nil, nil
	}
	return m.DirectoriesFunc(ctx)
}

func (m *sourceMock) DirectoryImages(ctx context.Context) ([]legacy.DirectoryImageRow, error) {
	if m.DirectoryImagesFunc == nil {
		return nil, nil
	}
	return m.DirectoryImagesFunc(ctx)
}

func (m *sourceMock) Networks(ctx context.Context) ([]legacy.NetworkRow, error) {
	if m.NetworksFunc == nil {
		return nil, nil
	}
	return m.NetworksFunc(ctx)
}

func (m *sourceMock) DirectoryNetworks(ctx context.Context) ([]legacy.DirectoryNetworkRow, error) {
	if m.DirectoryNetworksFunc == nil {
		return nil, nil
	}
	return m.DirectoryNetworksFunc(ctx)
}

func (m *sourceMock) ListingCategories(ctx context.Context) ([]legacy.ListingCategoryRow, error) {
	if m.ListingCategoriesFunc == nil {
		return nil, nil
	}
	return m.ListingCategoriesFunc(ctx)
}

func (m *sourceMock) ListingCategoryTranslations(ctx context.Context) ([]legacy.ListingCategoryTranslationRow, error) {
	if m.ListingCategoryTranslationsFunc == nil {
		return nil, nil
	}
	return m.ListingCategoryTranslationsFunc(ctx)
}

func (m *sourceMock) DirectoryListingCategories(ctx context.Context) ([]legacy.DirectoryListingCategoryRow, error) {
	if m.DirectoryListingCategoriesFunc == nil {
		return nil, nil
	}
	return m.DirectoryListingCategoriesFunc(ctx)
}

func (m *sourceMock) DirectoryOffers(ctx context.Context) ([]legacy.DirectoryOfferRow, error) {
	if m.DirectoryOffersFunc == nil {
		return nil, nil
	}
	return m.DirectoryOffersFunc(ctx)
}

func (m *sourceMock) DirectoryLabels(ctx context.Context) ([]legacy.DirectoryLabelRow, error) {
	if m.DirectoryLabelsFunc == nil {
		return nil, nil
	}
	return m.DirectoryLabelsFunc(ctx)
}

func (m *sourceMock) DirectoryClientImages(ctx context.Context) ([]legacy.DirectoryClientImageRow, error) {
	if m.DirectoryClientImagesFunc == nil {
		return nil, nil
	}
	return m.DirectoryClientImagesFunc(ctx)
}

func (m *sourceMock) Listings(ctx context.Context) ([]legacy.ListingRow, error) {
	if m.ListingsFunc == nil {
		return nil, nil
	}
	return m.ListingsFunc(ctx)
}

func (m *sourceMock) ListingTranslations(ctx context.Context) ([]legacy.ListingTranslationRow, error) {
	if m.ListingTranslationsFunc == nil {
		return nil, nil
	}
	return m.ListingTranslationsFunc(ctx)
}

func (m *sourceMock) ListingImages(ctx context.Context) ([]legacy.ListingImageRow, error) {
	if m.ListingImagesFunc == nil {
		return nil, nil
	}
	return m.ListingImagesFunc(ctx)
}

func (m *sourceMock) Users(ctx context.Context) ([]legacy.UserRow, error) {
	if m.UsersFunc == nil {
		return nil, nil
	}
	return m.UsersFunc(ctx)
}

func (m *sourceMock) UserImages(ctx context.Context) ([]legacy.UserImageRow, error) {
	if m.UserImagesFunc == nil {
		return nil, nil
	}
	return m.UserImagesFunc(ctx)
}

func (m *sourceMock) DirectoryUsers(ctx context.Context) ([]legacy.DirectoryUserRow, error) {
	if m.DirectoryUsersFunc == nil {
		return nil, nil
	}
	return m.DirectoryUsersFunc(ctx)
}

type siaeStoreMock struct {
	CreateFunc                func(ctx context.Context, s *domain.Siae) (*domain.Siae, error)
	DeleteAllFunc             func(ctx context.Context) error
	SetImageNameFunc          func(ctx context.Context, id int64, imageName string) error
	UpdateContactFunc         func(ctx context.Context, id int64, c siae.UserContact) error
	ListFirstUserContactsFunc func(ctx context.Context) ([]siae.UserContact, error)
	IDsByLegacyUserIDFunc     func(ctx context.Context, c4ID int64) ([]int64, error)

	AddNetworkFunc            func(ctx context.Context, siaeID, networkID int64) error
	AddSectorFunc             func(ctx context.Context, siaeID, sectorID int64) error
	AddUserFunc               func(ctx context.Context, siaeID, userID int64) error
	DeleteAllNetworkLinksFunc func(ctx context.Context) error
	DeleteAllSectorLinksFunc  func(ctx context.Context) error
	DeleteAllUserLinksFunc    func(ctx context.Context) error

	CreateOfferFunc               func(ctx context.Context, o *domain.SiaeOffer) (*domain.SiaeOffer, error)
	CreateLabelFunc               func(ctx context.Context, l *domain.SiaeLabel) (*domain.SiaeLabel, error)
	CreateClientReferenceFunc     func(ctx context.Context, c *domain.SiaeClientReference) (*domain.SiaeClientReference, error)
	CreateImageFunc               func(ctx context.Context, img *domain.SiaeImage) (*domain.SiaeImage, error)
	DeleteAllOffersFunc           func(ctx context.Context) error
	DeleteAllLabelsFunc           func(ctx context.Context) error
	DeleteAllClientReferencesFunc func(ctx context.Context) error
	DeleteAllImagesFunc           func(ctx context.Context) error

	ResetIDSequenceFunc   func(ctx context.Context) error
	CountFunc             func(ctx context.Context) (int, error)
	CountWithImageFunc    func(ctx context.Context) (int, error)
	CountNetworkLinksFunc func(ctx context.Context) (int, error)
	CountSectorLinksFunc  func(ctx context.Context) (int, error)
	CountUserLinksFunc    func(ctx context.Context) (int, error)
}

func (m *siaeStoreMock) Create(ctx context.Context, s *domain.Siae) (*domain.Siae, error) {
	if m.CreateFunc == nil {
		return s, nil
	}
	return m.CreateFunc(ctx, s)
}

func (m *siaeStoreMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc == nil {
		return nil
	}
	return m.DeleteAllFunc(ctx)
}

func (m *siaeStoreMock) SetImageName(ctx context.Context, id int64, imageName string) error {
	if m.SetImageNameFunc == nil {
		return nil
	}
	return m.SetImageNameFunc(ctx, id, imageName)
}

func (m *siaeStoreMock) UpdateContact(ctx context.Context, id int64, c siae.UserContact) error {
	if m.UpdateContactFunc == nil {
		return nil
	}
	return m.UpdateContactFunc(ctx, id, c)
}

func (m *siaeStoreMock) ListFirstUserContacts(ctx context.Context) ([]siae.UserContact, error) {
	if m.ListFirstUserContactsFunc == nil {
		return nil, nil
	}
	return m.ListFirstUserContactsFunc(ctx)
}

func (m *siaeStoreMock) IDsByLegacyUserID(ctx context.Context, c4ID int64) ([]int64, error) {
	if m.IDsByLegacyUserIDFunc == nil {
		return nil, nil
	}
	return m.IDsByLegacyUserIDFunc(ctx, c4ID)
}

func (m *siaeStoreMock) AddNetwork(ctx context.Context, siaeID, networkID int64) error {
	if m.AddNetworkFunc == nil {
		return nil
	}
	return m.AddNetworkFunc(ctx, siaeID, networkID)
}

func (m *siaeStoreMock) AddSector(ctx context.Context, siaeID, sectorID int64) error {
	if m.AddSectorFunc == nil {
		return nil
	}
	return m.AddSectorFunc(ctx, siaeID, sectorID)
}

func (m *siaeStoreMock) AddUser(ctx context.Context, siaeID, userID int64) error {
	if m.AddUserFunc == nil {
		return nil
	}
	return m.AddUserFunc(ctx, siaeID, userID)
}

func (m *siaeStoreMock) DeleteAllNetworkLinks(ctx context.Context) error {
	if m.DeleteAllNetworkLinksFunc == nil {
		return nil
	}
	return m.DeleteAllNetworkLinksFunc(ctx)
}

func (m *siaeStoreMock) DeleteAllSectorLinks(ctx context.Context) error {
	if m.DeleteAllSectorLinksFunc == nil {
		return nil
	}
	return m.DeleteAllSectorLinksFunc(ctx)
}

func (m *siaeStoreMock) DeleteAllUserLinks(ctx context.Context) error {
	if m.DeleteAllUserLinksFunc == nil {
		return nil
	}
	return m.DeleteAllUserLinksFunc(ctx)
}

func (m *siaeStoreMock) CreateOffer(ctx context.Context, o *domain.SiaeOffer) (*domain.SiaeOffer, error) {
	if m.CreateOfferFunc == nil {
		return o, nil
	}
	return m.CreateOfferFunc(ctx, o)
}

func (m *siaeStoreMock) CreateLabel(ctx context.Context, l *domain.SiaeLabel) (*domain.SiaeLabel, error) {
	if m.CreateLabelFunc == nil {
		return l, nil
	}
	return m.CreateLabelFunc(ctx, l)
}

func (m *siaeStoreMock) CreateClientReference(ctx context.Context, c *domain.SiaeClientReference) (*domain.SiaeClientReference, error) {
	if m.CreateClientReferenceFunc == nil {
		return c, nil
	}
	return m.CreateClientReferenceFunc(ctx, c)
}

func (m *siaeStoreMock) CreateImage(ctx context.Context, img *domain.SiaeImage) (*domain.SiaeImage, error) {
	if m.CreateImageFunc == nil {
		return img, nil
	}
	return m.CreateImageFunc(ctx, img)
}

func (m *siaeStoreMock) DeleteAllOffers(ctx context.Context) error {
	if m.DeleteAllOffersFunc == nil {
		return nil
	}
	return m.DeleteAllOffersFunc(ctx)
}

func (m *siaeStoreMock) DeleteAllLabels(ctx context.Context) error {
	if m.DeleteAllLabelsFunc == nil {
		return nil
	}
	return m.DeleteAllLabelsFunc(ctx)
}

func (m *siaeStoreMock) DeleteAllClientReferences(ctx context.Context) error {
	if m.DeleteAllClientReferencesFunc == nil {
		return nil
	}
	return m.DeleteAllClientReferencesFunc(ctx)
}

func (m *siaeStoreMock) DeleteAllImages(ctx context.Context) error {
	if m.DeleteAllImagesFunc == nil {
		return nil
	}
	return m.DeleteAllImagesFunc(ctx)
}

func (m *siaeStoreMock) ResetIDSequence(ctx context.Context) error {
	if m.ResetIDSequenceFunc == nil {
		return nil
	}
	return m.ResetIDSequenceFunc(ctx)
}

func (m *siaeStoreMock) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		return 0, nil
	}
	return m.CountFunc(ctx)
}

func (m *siaeStoreMock) CountWithImage(ctx context.Context) (int, error) {
	if m.CountWithImageFunc == nil {
		return 0, nil
	}
	return m.CountWithImageFunc(ctx)
}

func (m *siaeStoreMock) CountNetworkLinks(ctx context.Context) (int, error) {
	if m.CountNetworkLinksFunc == nil {
		return 0, nil
	}
	return m.CountNetworkLinksFunc(ctx)
}

func (m *siaeStoreMock) CountSectorLinks(ctx context.Context) (int, error) {
	if m.CountSectorLinksFunc == nil {
		return 0, nil
	}
	return m.CountSectorLinksFunc(ctx)
}

func (m *siaeStoreMock) CountUserLinks(ctx context.Context) (int, error) {
	if m.CountUserLinksFunc == nil {
		return 0, nil
	}
	return m.CountUserLinksFunc(ctx)
}

type networkStoreMock struct {
	CreateFunc          func(ctx context.Context, n *domain.Network) (*domain.Network, error)
	DeleteAllFunc       func(ctx context.Context) error
	ResetIDSequenceFunc func(ctx context.Context) error
	CountFunc           func(ctx context.Context) (int, error)
}

func (m *networkStoreMock) Create(ctx context.Context, n *domain.Network) (*domain.Network, error) {
	if m.CreateFunc == nil {
		return n, nil
	}
	return m.CreateFunc(ctx, n)
}

func (m *networkStoreMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc == nil {
		return nil
	}
	return m.DeleteAllFunc(ctx)
}

func (m *networkStoreMock) ResetIDSequence(ctx context.Context) error {
	if m.ResetIDSequenceFunc == nil {
		return nil
	}
	return m.ResetIDSequenceFunc(ctx)
}

func (m *networkStoreMock) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		return 0, nil
	}
	return m.CountFunc(ctx)
}

type sectorStoreMock struct {
	CreateGroupFunc      func(ctx context.Context, g *domain.SectorGroup) (*domain.SectorGroup, error)
	CreateSectorFunc     func(ctx context.Context, s *domain.Sector) (*domain.Sector, error)
	DeleteAllFunc        func(ctx context.Context) error
	ResetIDSequencesFunc func(ctx context.Context) error
	CountFunc            func(ctx context.Context) (int, error)
	CountGroupsFunc      func(ctx context.Context) (int, error)
}

func (m *sectorStoreMock) CreateGroup(ctx context.Context, g *domain.SectorGroup) (*domain.SectorGroup, error) {
	if m.CreateGroupFunc == nil {
		return g, nil
	}
	return m.CreateGroupFunc(ctx, g)
}

func (m *sectorStoreMock) CreateSector(ctx context.Context, s *domain.Sector) (*domain.Sector, error) {
	if m.CreateSectorFunc == nil {
		return s, nil
	}
	return m.CreateSectorFunc(ctx, s)
}

func (m *sectorStoreMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc == nil {
		return nil
	}
	return m.DeleteAllFunc(ctx)
}

func (m *sectorStoreMock) ResetIDSequences(ctx context.Context) error {
	if m.ResetIDSequencesFunc == nil {
		return nil
	}
	return m.ResetIDSequencesFunc(ctx)
}

func (m *sectorStoreMock) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		return 0, nil
	}
	return m.CountFunc(ctx)
}

func (m *sectorStoreMock) CountGroups(ctx context.Context) (int, error) {
	if m.CountGroupsFunc == nil {
		return 0, nil
	}
	return m.CountGroupsFunc(ctx)
}

type userStoreMock struct {
	CreateFunc                 func(ctx context.Context, u *domain.User) (*domain.User, error)
	DeleteMigratedFunc         func(ctx context.Context) error
	GetByLegacyIDFunc          func(ctx context.Context, c4ID int64) (*domain.User, error)
	SetImageNameByLegacyIDFunc func(ctx context.Context, c4ID int64, imageName string) error
	CountFunc                  func(ctx context.Context) (int, error)
	CountWithImageFunc         func(ctx context.Context) (int, error)
}

func (m *userStoreMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		return u, nil
	}
	return m.CreateFunc(ctx, u)
}

func (m *userStoreMock) DeleteMigrated(ctx context.Context) error {
	if m.DeleteMigratedFunc == nil {
		return nil
	}
	return m.DeleteMigratedFunc(ctx)
}

func (m *userStoreMock) GetByLegacyID(ctx context.Context, c4ID int64) (*domain.User, error) {
	if m.GetByLegacyIDFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByLegacyIDFunc(ctx, c4ID)
}

func (m *userStoreMock) SetImageNameByLegacyID(ctx context.Context, c4ID int64, imageName string) error {
	if m.SetImageNameByLegacyIDFunc == nil {
		return nil
	}
	return m.SetImageNameByLegacyIDFunc(ctx, c4ID, imageName)
}

func (m *userStoreMock) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		return 0, nil
	}
	return m.CountFunc(ctx)
}

func (m *userStoreMock) CountWithImage(ctx context.Context) (int, error) {
	if m.CountWithImageFunc == nil {
		return 0, nil
	}
	return m.CountWithImageFunc(ctx)
}
