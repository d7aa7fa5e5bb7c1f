package scheduler

import (
	"context"
	"log"
	"time"

	"wishfund/extractor"
	"wishfund/models"
	"wishfund/repository"

	"github.com/robfig/cron/v3"
)

// refreshTimeout bounds one product's full extraction cascade.
const refreshTimeout = 2 * time.Minute

// PriceRefresher periodically re-runs the extraction pipeline over saved
// goals so displayed prices do not go stale.
type PriceRefresher struct {
	cron        *cron.Cron
	productRepo *repository.ProductRepository
	extractor   *extractor.ProductExtractor
	spec        string
}

func NewPriceRefresher(productRepo *repository.ProductRepository, productExtractor *extractor.ProductExtractor, spec string) *PriceRefresher {
	return &PriceRefresher{
		cron:        cron.New(cron.WithSeconds()),
		productRepo: productRepo,
		extractor:   productExtractor,
		spec:        spec,
	}
}

// Start schedules the periodic refresh.
func (pr *PriceRefresher) Start() {
	_, err := pr.cron.AddFunc(pr.spec, pr.refreshAllPrices)
	if err != nil {
		log.Printf("Failed to schedule price refresher: %v", err)
		return
	}

	pr.cron.Start()
	log.Printf("Price refresher scheduled (%s)", pr.spec)
}

// Stop stops the scheduler.
func (pr *PriceRefresher) Stop() {
	if pr.cron != nil {
		pr.cron.Stop()
	}
}

// refreshAllPrices re-extracts every saved goal sequentially. Extractions
// share the headless-browser strategy, so they are deliberately not run in
// parallel.
func (pr *PriceRefresher) refreshAllPrices() {
	log.Println("Starting scheduled price refresh for saved goals")

	products, err := pr.productRepo.GetAllProducts()
	if err != nil {
		log.Printf("Failed to get products: %v", err)
		return
	}

	if len(products) == 0 {
		log.Println("No products to refresh")
		return
	}

	log.Printf("Refreshing prices for %d products", len(products))
	for _, product := range products {
		pr.refreshProductPrice(product)
	}
}

func (pr *PriceRefresher) refreshProductPrice(product models.Product) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	record, err := pr.extractor.FetchProduct(ctx, product.URL)
	if err != nil {
		log.Printf("Failed to refresh price for %s: %v", product.URL, err)
		return
	}
	if record.Error != "" || record.Price <= 0 {
		log.Printf("No usable price for %s, keeping stored value", product.URL)
		return
	}

	if record.Price == product.Price {
		return
	}

	if err := pr.productRepo.UpdateProductPrice(product.ID, record.Price); err != nil {
		log.Printf("Failed to update price for product %d: %v", product.ID, err)
		return
	}
	log.Printf("Updated price for %q: %.2f -> %.2f", product.Name, product.Price, record.Price)
}
