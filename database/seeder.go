package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

const (
	seedAdminEmail    = "admin@betawatch.com"
	seedAdminPassword = "Admin@123"
)

// Seeder populates an empty database with an admin account and a
// sample catalog. Intended for development environments.
type Seeder struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewSeeder creates a Seeder.
func NewSeeder(products repository.ProductRepository, users repository.UserRepository) *Seeder {
	return &Seeder{products: products, users: users}
}

// Run seeds the catalog and the admin user, skipping whatever already
// exists.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedProducts(ctx); err != nil {
		return err
	}
	return s.seedAdmin(ctx)
}

// Reseed wipes the catalog and seeds it again, returning the number of
// seeded products.
func (s *Seeder) Reseed(ctx context.Context) (int, error) {
	deleted, err := s.products.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	zap.L().Info("deleted products for reseed", zap.Int64("count", deleted))
	if err := s.seedProducts(ctx); err != nil {
		return 0, err
	}
	return len(sampleProducts()), nil
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	count, err := s.products.Count(ctx, repository.ProductFilter{IncludeInactive: true})
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		zap.L().Info("products already seeded, skipping")
		return nil
	}

	products := sampleProducts()
	if err := s.products.InsertMany(ctx, products); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	zap.L().Info("seeded products", zap.Int("count", len(products)))
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	_, err := s.users.FindByEmail(ctx, seedAdminEmail)
	if err == nil {
		zap.L().Info("admin user already exists, skipping")
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		FirstName: "Admin",
		LastName:  "BetaWatch",
		Email:     seedAdminEmail,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	zap.L().Info("admin user created", zap.String("email", seedAdminEmail))
	return nil
}

func floatPtr(f float64) *float64 { return &f }

// sampleProducts returns a development catalog covering every
// category.
func sampleProducts() []models.Product {
	return []models.Product{
		{
			Name:             "Royal Oak",
			Brand:            "Audemars Piguet",
			Price:            45000,
			OriginalPrice:    floatPtr(52000),
			Description:      "The Royal Oak is the worlds first luxury sports watch. Created by the legendary watch designer Gerald Genta in 1972, it remains one of the most iconic timepieces ever created.",
			ShortDescription: "Iconic luxury sports watch with octagonal bezel",
			Images: []string{
				"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800",
				"https://images.unsplash.com/photo-1546868871-7041f2a55e12?w=800",
			},
			Category: models.CategoryLuxury,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "18K Rose Gold",
				CaseSize:        "41mm",
				DialColor:       "Blue Grande Tapisserie",
				Movement:        "Calibre 4302 Automatic",
				WaterResistance: "50m",
				StrapMaterial:   "Integrated bracelet",
				StrapColor:      "Rose Gold",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "70 hours",
				Features:        []string{"Date display", "Self-winding", "Exhibition caseback"},
			},
			Stock:      3,
			IsNew:      true,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:             "Nautilus 5711",
			Brand:            "Patek Philippe",
			Price:            85000,
			OriginalPrice:    floatPtr(95000),
			Description:      "The Nautilus is a luxury sports watch designed by Gerald Genta in 1976. With its distinctive porthole-shaped case inspired by ocean liners, it has become one of the most sought-after watches in the world.",
			ShortDescription: "Legendary sports-elegant timepiece",
			Images:           []string{"https://images.unsplash.com/photo-1548171915-e79a380a2a4b?w=800"},
			Category:         models.CategoryLuxury,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Stainless Steel",
				CaseSize:        "40mm",
				DialColor:       "Blue Gradient",
				Movement:        "Calibre 26-330 S C Automatic",
				WaterResistance: "120m",
				StrapMaterial:   "Integrated bracelet",
				StrapColor:      "Steel",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "45 hours",
				Features:        []string{"Date display", "Sweep seconds hand", "Fold-over clasp"},
			},
			Stock:      2,
			IsNew:      true,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:             "Submariner Date",
			Brand:            "Rolex",
			Price:            14500,
			Description:      "The Submariner is the archetypal divers watch. Launched in 1953, it was the first divers wristwatch waterproof to a depth of 100 metres. It has set the standard for diving watches ever since.",
			ShortDescription: "The ultimate diving watch icon",
			Images:           []string{"https://images.unsplash.com/photo-1587836374828-a58e71466c4b?w=800"},
			Category:         models.CategoryDiving,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Oystersteel",
				CaseSize:        "41mm",
				DialColor:       "Black",
				Movement:        "Calibre 3235 Automatic",
				WaterResistance: "300m",
				StrapMaterial:   "Oyster bracelet",
				StrapColor:      "Steel",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "70 hours",
				Features:        []string{"Date display", "Cerachrom bezel", "Triplock crown", "Luminescent Chromalight display"},
			},
			Stock:      8,
			IsNew:      true,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:             "Seamaster 300",
			Brand:            "Omega",
			Price:            6500,
			Description:      "The Seamaster 300 combines vintage aesthetics with modern Master Chronometer technology. Inspired by the original 1957 model, it offers exceptional dive watch performance with authentic styling.",
			ShortDescription: "Heritage diving with modern performance",
			Images:           []string{"https://images.unsplash.com/photo-1622434641406-a158123450f9?w=800"},
			Category:         models.CategoryDiving,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Stainless Steel",
				CaseSize:        "41mm",
				DialColor:       "Black Vintage",
				Movement:        "Master Co-Axial 8400",
				WaterResistance: "300m",
				StrapMaterial:   "NATO strap",
				StrapColor:      "Black and Grey",
				Crystal:         "Domed Sapphire Crystal",
				PowerReserve:    "60 hours",
				Features:        []string{"Date display", "Master Chronometer", "Luminescent markers", "Vintage lume"},
			},
			Stock:    10,
			IsActive: true,
		},
		{
			Name:             "Speedmaster Moonwatch Professional",
			Brand:            "Omega",
			Price:            7200,
			Description:      "The Speedmaster Professional Moonwatch has been part of all six lunar landing missions. It is the only watch to have been qualified by NASA for all manned space flights and remains the choice of astronauts today.",
			ShortDescription: "The legendary Moon landing chronograph",
			Images:           []string{"https://images.unsplash.com/photo-1614164185128-e4ec99c436d7?w=800"},
			Category:         models.CategoryChronograph,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Stainless Steel",
				CaseSize:        "42mm",
				DialColor:       "Black",
				Movement:        "Calibre 3861 Manual-winding",
				WaterResistance: "50m",
				StrapMaterial:   "Steel bracelet",
				StrapColor:      "Steel",
				Crystal:         "Hesalite Crystal",
				PowerReserve:    "50 hours",
				Features:        []string{"Chronograph", "Tachymeter scale", "NASA flight-qualified", "Manual winding"},
			},
			Stock:      12,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:             "Daytona Cosmograph",
			Brand:            "Rolex",
			Price:            28000,
			OriginalPrice:    floatPtr(32000),
			Description:      "The Cosmograph Daytona is the ultimate chronograph for racing enthusiasts. Introduced in 1963, it has become an icon of motorsport timing and remains highly coveted by collectors.",
			ShortDescription: "The ultimate racing chronograph",
			Images:           []string{"https://images.unsplash.com/photo-1548171915-e79a380a2a4b?w=800"},
			Category:         models.CategoryChronograph,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Oystersteel",
				CaseSize:        "40mm",
				DialColor:       "White",
				Movement:        "Calibre 4130 Automatic",
				WaterResistance: "100m",
				StrapMaterial:   "Oyster bracelet",
				StrapColor:      "Steel",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "72 hours",
				Features:        []string{"Chronograph", "Tachymeter scale", "In-house movement", "Screw-down pushers"},
			},
			Stock:      2,
			IsNew:      true,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:             "GMT-Master II",
			Brand:            "Rolex",
			Price:            18500,
			Description:      "The GMT-Master II was originally developed for Pan Am pilots to tell time in multiple time zones. Its iconic two-tone bezel and robust construction make it a favorite among travelers and watch enthusiasts.",
			ShortDescription: "The world travelers essential",
			Images:           []string{"https://images.unsplash.com/photo-1587836374828-a58e71466c4b?w=800"},
			Category:         models.CategorySport,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Oystersteel",
				CaseSize:        "40mm",
				DialColor:       "Black",
				Movement:        "Calibre 3285 Automatic",
				WaterResistance: "100m",
				StrapMaterial:   "Jubilee bracelet",
				StrapColor:      "Steel",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "70 hours",
				Features:        []string{"GMT function", "Date display", "Bidirectional bezel", "Independent hour hand"},
			},
			Stock:      4,
			IsNew:      true,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:             "Black Bay 58",
			Brand:            "Tudor",
			Price:            3900,
			Description:      "The Black Bay Fifty-Eight brings vintage proportions to Tudors dive watch collection. Named after the year Tudor achieved 200m water resistance, it offers authentic 1950s styling.",
			ShortDescription: "Vintage-inspired modern classic",
			Images:           []string{"https://images.unsplash.com/photo-1547996160-81dfa63595aa?w=800"},
			Category:         models.CategorySport,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Stainless Steel",
				CaseSize:        "39mm",
				DialColor:       "Black",
				Movement:        "MT5402 Automatic",
				WaterResistance: "200m",
				StrapMaterial:   "NATO strap",
				StrapColor:      "Black",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "70 hours",
				Features:        []string{"Date display", "Unidirectional bezel", "Vintage snowflake hands", "In-house movement"},
			},
			Stock:    18,
			IsActive: true,
		},
		{
			Name:             "Reverso Classic",
			Brand:            "Jaeger-LeCoultre",
			Price:            8500,
			Description:      "The Reverso was invented in 1931 to withstand the rigors of polo. Its legendary reversible case allows wearers to protect the dial or reveal a personalized engraving.",
			ShortDescription: "Art Deco icon with reversible case",
			Images:           []string{"https://images.unsplash.com/photo-1594534475808-b18fc33b045e?w=800"},
			Category:         models.CategoryClassic,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Stainless Steel",
				CaseSize:        "45.6 x 27.4mm",
				DialColor:       "Silver",
				Movement:        "Calibre 822 Manual",
				WaterResistance: "30m",
				StrapMaterial:   "Alligator leather",
				StrapColor:      "Black",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "42 hours",
				Features:        []string{"Reversible case", "Small seconds", "Manual winding", "Engravable caseback"},
			},
			Stock:      7,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:             "Tank Francaise",
			Brand:            "Cartier",
			Price:            7200,
			Description:      "The Tank was created in 1917 inspired by Renault tanks on the Western Front. The Tank Francaise adds an integrated bracelet for a more contemporary, sporty feel while maintaining the elegant lines.",
			ShortDescription: "Iconic rectangular elegance",
			Images:           []string{"https://images.unsplash.com/photo-1539874754764-5a96559165b0?w=800"},
			Category:         models.CategoryClassic,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Stainless Steel",
				CaseSize:        "32 x 27mm",
				DialColor:       "Silver",
				Movement:        "Quartz",
				WaterResistance: "30m",
				StrapMaterial:   "Steel bracelet",
				StrapColor:      "Steel",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "Battery powered",
				Features:        []string{"Roman numerals", "Blue steel hands", "Octagonal crown", "Integrated bracelet"},
			},
			Stock:    12,
			IsNew:    true,
			IsActive: true,
		},
		{
			Name:             "Big Bang Unico",
			Brand:            "Hublot",
			Price:            25000,
			OriginalPrice:    floatPtr(28000),
			Description:      "The Big Bang Unico represents the Art of Fusion philosophy with its innovative combination of materials. Bold and distinctive, it makes a powerful statement while showcasing Hublots in-house movement.",
			ShortDescription: "Bold fusion of innovation",
			Images:           []string{"https://images.unsplash.com/photo-1606744824163-985d376605aa?w=800"},
			Category:         models.CategoryLimitedEdition,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Titanium and King Gold",
				CaseSize:        "45mm",
				DialColor:       "Skeleton",
				Movement:        "UNICO HUB1280 Manufacture",
				WaterResistance: "100m",
				StrapMaterial:   "Rubber with deployment clasp",
				StrapColor:      "Black",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "72 hours",
				Features:        []string{"Flyback chronograph", "Skeleton dial", "Column wheel", "Limited to 500 pieces"},
			},
			Stock:      2,
			IsNew:      true,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:             "Seamaster Spectre 007",
			Brand:            "Omega",
			Price:            9500,
			Description:      "This limited edition Seamaster was created for the James Bond film Spectre. Featuring unique styling cues from the movies, it represents the ultimate Bond watch for collectors.",
			ShortDescription: "James Bond limited edition",
			Images:           []string{"https://images.unsplash.com/photo-1622434641406-a158123450f9?w=800"},
			Category:         models.CategoryLimitedEdition,
			Specifications: models.ProductSpecification{
				CaseMaterial:    "Stainless Steel",
				CaseSize:        "41mm",
				DialColor:       "Black with 12-hour scale",
				Movement:        "Master Co-Axial 8400",
				WaterResistance: "300m",
				StrapMaterial:   "NATO strap",
				StrapColor:      "Grey and Black stripes",
				Crystal:         "Sapphire Crystal",
				PowerReserve:    "60 hours",
				Features:        []string{"Master Chronometer", "Lollipop seconds hand", "007 engraved on caseback", "Limited to 7007 pieces"},
			},
			Stock:      1,
			IsFeatured: true,
			IsActive:   true,
		},
	}
}
