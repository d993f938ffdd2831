// Package memory 目录数据的进程内实现；站点内容为静态数据，无需数据库
package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/artsfoundation/internal/catalog/domain"
)

type catalogRepository struct {
	programs []domain.Program
	events   []domain.Event
	products []domain.Product
	artists  []domain.Artist
}

// NewCatalogRepository 创建预置站点内容的目录仓储
func NewCatalogRepository() domain.Repository {
	return &catalogRepository{
		programs: seedPrograms(),
		events:   seedEvents(),
		products: seedProducts(),
		artists:  seedArtists(),
	}
}

func (r *catalogRepository) Programs(ctx context.Context) ([]domain.Program, error) {
	return r.programs, nil
}

func (r *catalogRepository) Events(ctx context.Context) ([]domain.Event, error) {
	return r.events, nil
}

func (r *catalogRepository) EventByID(ctx context.Context, id int64) (*domain.Event, error) {
	for i := range r.events {
		if r.events[i].ID == id {
			return &r.events[i], nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (r *catalogRepository) Products(ctx context.Context) ([]domain.Product, error) {
	return r.products, nil
}

func (r *catalogRepository) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *catalogRepository) Artists(ctx context.Context) ([]domain.Artist, error) {
	return r.artists, nil
}

func seedPrograms() []domain.Program {
	return []domain.Program{
		{ID: 1, Title: "Art Workshops", Description: "Weekly art workshops for beginners and experienced artists alike.", ImageURL: "https://images.unsplash.com/photo-1579762715118-a6f1d4b934f1?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=200&q=80"},
		{ID: 2, Title: "Art Exhibitions", Description: "Monthly exhibitions featuring work from our community artists.", ImageURL: "https://images.unsplash.com/photo-1578926288207-32356a2b80df?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=200&q=80"},
		{ID: 3, Title: "Community Outreach", Description: "Art therapy and education programs for underserved communities.", ImageURL: "https://images.unsplash.com/photo-1593642532744-d377ab507dc8?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=200&q=80"},
	}
}

func seedEvents() []domain.Event {
	return []domain.Event{
		{
			ID:          1,
			Title:       "Summer Art Fair",
			Description: "Join us for our annual summer art fair featuring works from over 50 local artists. Browse and purchase unique artworks, enjoy live demonstrations, and participate in hands-on activities for all ages.",
			Date:        domain.EventDate{Day: "15", Month: "Aug"},
			Time:        "10:00 AM - 4:00 PM",
			Location:    "Central Park, Main Plaza",
			Image:       "https://images.unsplash.com/photo-1459749411175-04bf5292ceea?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300&q=80",
			Price:       decimal.Zero,
		},
		{
			ID:          2,
			Title:       "Watercolor Workshop",
			Description: "Learn essential watercolor techniques from our experienced instructors in this hands-on workshop. This class is suitable for beginners and intermediate painters looking to refine their skills.",
			Date:        domain.EventDate{Day: "23", Month: "Aug"},
			Time:        "2:00 PM - 5:00 PM",
			Location:    "Art Studio, 123 Main St",
			Image:       "https://images.unsplash.com/photo-1547891654-e66ed7ebb968?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300&q=80",
			Price:       decimal.NewFromInt(25),
		},
		{
			ID:          3,
			Title:       "Artist Talk: Modern Expressionism",
			Description: "Join renowned artist Maria Sanchez as she discusses the influence of expressionism in contemporary art. Following the talk will be a Q&A session and light refreshments.",
			Date:        domain.EventDate{Day: "30", Month: "Aug"},
			Time:        "6:30 PM - 8:00 PM",
			Location:    "Community Gallery",
			Image:       "https://images.unsplash.com/photo-1580060860978-d479ca3087fb?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300&q=80",
			Price:       decimal.NewFromInt(10),
		},
		{
			ID:          4,
			Title:       "Children's Art Day",
			Description: "A special day dedicated to young artists! Children ages 5-12 can explore different art mediums through guided activities. All materials provided.",
			Date:        domain.EventDate{Day: "05", Month: "Sep"},
			Time:        "9:00 AM - 12:00 PM",
			Location:    "Youth Center, 456 Elm St",
			Image:       "https://images.unsplash.com/photo-1516627145497-ae6968895b40?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300&q=80",
			Price:       decimal.NewFromInt(15),
		},
		{
			ID:          5,
			Title:       "Sculpture Exhibition Opening",
			Description: "Be the first to see our new sculpture exhibition featuring works from regional artists. Opening reception includes artist meet-and-greet and wine tasting.",
			Date:        domain.EventDate{Day: "12", Month: "Sep"},
			Time:        "5:00 PM - 8:00 PM",
			Location:    "Main Gallery",
			Image:       "https://images.unsplash.com/photo-1576020799627-aeac74d58064?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300&q=80",
			Price:       decimal.NewFromInt(20),
		},
		{
			ID:          6,
			Title:       "Plein Air Painting Excursion",
			Description: "Paint outdoors with fellow artists at the botanical gardens. All skill levels welcome to this relaxed painting session surrounded by nature.",
			Date:        domain.EventDate{Day: "19", Month: "Sep"},
			Time:        "8:00 AM - 12:00 PM",
			Location:    "Botanical Gardens",
			Image:       "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300&q=80",
			Price:       decimal.Zero,
		},
	}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Abstract Landscape", Description: `Original acrylic painting on canvas, measuring 24" x 36".`, Price: decimal.NewFromInt(350), Artist: "Sarah Johnson", Image: "https://images.unsplash.com/photo-1579783902614-a3fb3927b6a5?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&h=400&q=80"},
		{ID: 2, Title: "Ocean Waves Print", Description: `Limited edition print, signed and numbered. 18" x 24".`, Price: decimal.NewFromInt(75), Artist: "Michael Chen", Image: "https://images.unsplash.com/photo-1577032064092-31a5e972b08a?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&h=400&q=80"},
		{ID: 3, Title: "Ceramic Vase", Description: `Handcrafted ceramic vase with blue glaze. 12" tall.`, Price: decimal.NewFromInt(120), Artist: "Elena Rodriguez", Image: "https://images.unsplash.com/photo-1612196808214-b7b41b50710c?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&h=400&q=80"},
		{ID: 4, Title: "Wood Sculpture", Description: `Hand-carved oak sculpture. 15" tall.`, Price: decimal.NewFromInt(275), Artist: "David Anderson", Image: "https://images.unsplash.com/photo-1612540905615-2b7c5bad84b8?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&h=400&q=80"},
		{ID: 5, Title: "Handwoven Textile", Description: "Handwoven wall hanging, natural dyes. 24\" x 36\".", Price: decimal.NewFromInt(185), Artist: "Amara Patel", Image: "https://images.unsplash.com/photo-1576187407450-394566cf35cd?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&h=400&q=80"},
		{ID: 6, Title: "Digital Art Print", Description: `Digital illustration printed on archival paper. 11" x 17".`, Price: decimal.NewFromInt(45), Artist: "Jordan Smith", Image: "https://images.unsplash.com/photo-1547891654-e66ed7ebb968?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&h=400&q=80"},
	}
}

func seedArtists() []domain.Artist {
	return []domain.Artist{
		{ID: 1, Name: "Sarah Johnson", Specialty: "Abstract Painting", Bio: "Sarah is a contemporary abstract painter whose work explores the relationship between color, form, and emotion. She has exhibited her work nationally and has been an artist-in-residence at several prestigious institutions.", Image: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400&q=80"},
		{ID: 2, Name: "Michael Chen", Specialty: "Printmaking", Bio: "Michael specializes in relief and intaglio printmaking, creating works that blend traditional techniques with contemporary subjects. His prints are held in several museum collections.", Image: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400&q=80"},
		{ID: 3, Name: "Elena Rodriguez", Specialty: "Ceramics", Bio: "Elena creates functional and sculptural ceramic pieces inspired by natural forms. She has taught ceramics for over a decade and her work has been featured in numerous galleries.", Image: "https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400&q=80"},
		{ID: 4, Name: "David Anderson", Specialty: "Wood Sculpture", Bio: "David is a sculptor who works primarily with reclaimed wood. His sculptures explore themes of sustainability and the relationship between humans and the natural world.", Image: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400&q=80"},
		{ID: 5, Name: "Amara Patel", Specialty: "Textile Art", Bio: "Amara creates handwoven textiles using traditional techniques and natural dyes. Her work celebrates cultural heritage and sustainable craft practices.", Image: "https://images.unsplash.com/photo-1567532939604-b6b5b0db2604?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400&q=80"},
		{ID: 6, Name: "Jordan Smith", Specialty: "Digital Illustration", Bio: "Jordan is a digital artist whose vibrant illustrations combine elements of fantasy and social commentary. Their work has been commissioned for various publications and exhibitions.", Image: "https://images.unsplash.com/photo-1531427186611-ecfd6d936c79?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400&q=80"},
	}
}
