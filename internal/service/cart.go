package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/repository"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
)

// maxCartItemQuantity caps a single line to keep carts sane.
const maxCartItemQuantity = 99

// CartService implements the business logic for shopping carts.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart retrieves the user's cart for a store. A missing cart is returned
// empty rather than as an error.
func (s *CartService) GetCart(ctx context.Context, userID, storeID string) (*domain.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, userID, storeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return emptyCart(userID, storeID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// AddItem adds a product to the cart, merging quantities when the product is
// already present. The unit price is snapshotted at add time.
func (s *CartService) AddItem(ctx context.Context, userID, storeID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product for cart: %w", err)
	}
	if product.StoreID != storeID {
		return nil, apperrors.InvalidInput("product does not belong to this store")
	}
	if !product.IsActive || !product.InStock() {
		return nil, apperrors.InvalidInput("product is not available")
	}

	cart, err := s.GetCart(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItemIndex(productID); idx >= 0 {
		cart.Items[idx].Quantity += quantity
		if cart.Items[idx].Quantity > maxCartItemQuantity {
			cart.Items[idx].Quantity = maxCartItemQuantity
		}
	} else {
		item := domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
		}
		if len(product.ImageURLs) > 0 {
			item.ImageURL = product.ImageURLs[0]
		}
		cart.Items = append(cart.Items, item)
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "cart item added",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// UpdateItemQuantity sets a line's quantity. Zero removes the line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, storeID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity > maxCartItemQuantity {
		quantity = maxCartItemQuantity
	}

	cart, err := s.GetCart(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(productID)
	if idx < 0 {
		return nil, apperrors.NotFound("cart item", productID)
	}

	if quantity == 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem removes a product line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, storeID, productID string) (*domain.Cart, error) {
	return s.UpdateItemQuantity(ctx, userID, storeID, productID, 0)
}

// ClearCart empties the user's cart for a store.
func (s *CartService) ClearCart(ctx context.Context, userID, storeID string) error {
	if err := s.cartRepo.Delete(ctx, userID, storeID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func emptyCart(userID, storeID string) *domain.Cart {
	return &domain.Cart{
		UserID:  userID,
		StoreID: storeID,
		Items:   []domain.CartItem{},
	}
}
