package service

import (
	"context"
	"errors"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// guestPrefix marks generated guest tokens.
const guestPrefix = "guest_"

// cartService implements CartService. Read-modify-write of a cart is not guarded:
// concurrent writers to the same cart race and the last save wins.
type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		carts:    carts,
		products: products,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// NewGuestID returns a fresh time-ordered guest token.
func NewGuestID() string {
	return guestPrefix + uuid.Must(uuid.NewV7()).String()
}

func (s *cartService) find(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	var (
		cart *model.Cart
		err  error
	)
	switch {
	case owner.HasUser():
		cart, err = s.carts.FindByUser(ctx, owner.UserID)
	case owner.GuestID != "":
		cart, err = s.carts.FindByGuest(ctx, owner.GuestID)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, model.Unavailable(err)
	}
	return cart, nil
}

func (s *cartService) save(ctx context.Context, cart *model.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		if model.KindOf(err) != 0 {
			return err
		}
		return model.Unavailable(err)
	}
	return nil
}

// GetCart retrieves the cart for owner.
func (s *cartService) GetCart(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	cart, err := s.find(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}
	return cart, nil
}

// AddItem adds quantity of a product variant to the owner's cart.
func (s *cartService) AddItem(
	ctx context.Context,
	owner model.CartOwner,
	productID uuid.UUID,
	quantity int,
	size, color string,
) (*model.Cart, error) {
	if productID == uuid.Nil {
		return nil, model.InvalidInput("productId is required")
	}
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to resolve product")
		return nil, model.Unavailable(err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	line := model.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.PrimaryImage(),
		Price:     product.Price,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	}

	cart, err := s.find(ctx, owner)
	if err != nil {
		return nil, err
	}

	if cart != nil {
		cart.Upsert(line)
		if err := s.save(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	now := time.Now().UTC()
	cart = &model.Cart{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if owner.HasUser() {
		userID := owner.UserID
		cart.UserID = &userID
	} else if owner.GuestID != "" {
		cart.GuestID = owner.GuestID
	} else {
		cart.GuestID = NewGuestID()
	}
	cart.Upsert(line)

	if err := s.carts.Create(ctx, cart); err != nil {
		if errors.Is(err, model.ErrCartExists) {
			// A concurrent request created the owner's cart first; add to that one.
			return s.addToExisting(ctx, owner, line)
		}
		s.logger.Error().Err(err).Msg("failed to create cart")
		return nil, model.Unavailable(err)
	}

	s.logger.Debug().Str("cart_id", cart.ID.String()).Msg("cart created")
	return cart, nil
}

func (s *cartService) addToExisting(ctx context.Context, owner model.CartOwner, line model.CartItem) (*model.Cart, error) {
	cart, err := s.GetCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart.Upsert(line)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetItemQuantity overwrites a line's quantity, removing it when quantity <= 0.
func (s *cartService) SetItemQuantity(
	ctx context.Context,
	owner model.CartOwner,
	key model.LineKey,
	quantity int,
) (*model.Cart, error) {
	if key.ProductID == uuid.Nil {
		return nil, model.InvalidInput("productId is required")
	}

	cart, err := s.GetCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !cart.SetQuantity(key, quantity) {
		return nil, model.ErrCartItemNotFound
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes a line.
func (s *cartService) RemoveItem(ctx context.Context, owner model.CartOwner, key model.LineKey) (*model.Cart, error) {
	if key.ProductID == uuid.Nil {
		return nil, model.InvalidInput("productId is required")
	}

	cart, err := s.GetCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(key) {
		return nil, model.ErrCartItemNotFound
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Merge moves a guest cart into a user's cart.
//
// Without a guest cart the user's cart is returned unchanged, so repeating a
// completed merge never duplicates lines. An empty guest cart is rejected. When
// the user has no cart the guest cart is re-owned in place; otherwise its lines
// are folded into the user's cart and the guest cart is deleted.
func (s *cartService) Merge(ctx context.Context, guestID string, userID uuid.UUID) (*model.Cart, error) {
	if guestID == "" {
		return nil, model.InvalidInput("guestId is required")
	}
	if userID == uuid.Nil {
		return nil, model.ErrUnauthorised
	}

	guest, err := s.find(ctx, model.CartOwner{GuestID: guestID})
	if err != nil {
		return nil, err
	}
	user, err := s.find(ctx, model.CartOwner{UserID: userID})
	if err != nil {
		return nil, err
	}

	if guest == nil {
		if user == nil {
			return nil, model.ErrGuestCartNotFound
		}
		return user, nil
	}

	if guest.IsEmpty() {
		return nil, model.ErrGuestCartEmpty
	}

	if user == nil {
		guest.UserID = &userID
		guest.GuestID = ""
		if err := s.save(ctx, guest); err != nil {
			return nil, err
		}
		s.logger.Info().
			Str("cart_id", guest.ID.String()).
			Str("user_id", userID.String()).
			Msg("guest cart assigned to user")
		return guest, nil
	}

	user.Absorb(guest)
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, guest.ID); err != nil {
		s.logger.Error().
			Err(err).
			Str("cart_id", guest.ID.String()).
			Str("guest_id", guestID).
			Msg("failed to delete merged guest cart")
	}

	s.logger.Info().
		Str("cart_id", user.ID.String()).
		Str("user_id", userID.String()).
		Int("lines", len(user.Products)).
		Msg("guest cart merged")

	return user, nil
}
