package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	userRepo            *UserRepo
	productCategoryRepo *ProductCategoryRepo
	productRepo         *ProductRepo
	productImageRepo    *ProductImageRepo
	productReviewRepo   *ProductReviewRepo
	productViewRepo     *ProductViewRepo
	serviceCategoryRepo *ServiceCategoryRepo
	serviceRepo         *ServiceRepo
	serviceImageRepo    *ServiceImageRepo
	testimonialRepo     *TestimonialRepo
	serviceViewRepo     *ServiceViewRepo
	projectRepo         *ProjectRepo
	projectCategoryRepo *ProjectCategoryRepo
	projectTagRepo      *ProjectTagRepo
	taskRepo            *TaskRepo
	db                  *gorm.DB
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:            NewUserRepo(db),
		productCategoryRepo: NewProductCategoryRepo(db),
		productRepo:         NewProductRepo(db),
		productImageRepo:    NewProductImageRepo(db),
		productReviewRepo:   NewProductReviewRepo(db),
		productViewRepo:     NewProductViewRepo(db),
		serviceCategoryRepo: NewServiceCategoryRepo(db),
		serviceRepo:         NewServiceRepo(db),
		serviceImageRepo:    NewServiceImageRepo(db),
		testimonialRepo:     NewTestimonialRepo(db),
		serviceViewRepo:     NewServiceViewRepo(db),
		projectRepo:         NewProjectRepo(db),
		projectCategoryRepo: NewProjectCategoryRepo(db),
		projectTagRepo:      NewProjectTagRepo(db),
		taskRepo:            NewTaskRepo(db),
		db:                  db,
	}
}

// Migrate creates or updates the schema for every catalog entity.
func (d Database) Migrate() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.ProductCategory{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductFeature{},
		&models.ProductReview{},
		&models.ProductView{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.ServiceImage{},
		&models.FAQ{},
		&models.ServiceFeature{},
		&models.ServicePackage{},
		&models.ServiceArea{},
		&models.Testimonial{},
		&models.ServiceView{},
		&models.ProjectCategory{},
		&models.ProjectTag{},
		&models.Project{},
		&models.Task{},
	)
}

// Ping verifies the underlying connection is alive.
func (d Database) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProductCategoryRepo() *ProductCategoryRepo {
	return d.productCategoryRepo
}

func (d Database) ProductRepo() *ProductRepo {
	return d.productRepo
}

func (d Database) ProductImageRepo() *ProductImageRepo {
	return d.productImageRepo
}

func (d Database) ProductReviewRepo() *ProductReviewRepo {
	return d.productReviewRepo
}

func (d Database) ProductViewRepo() *ProductViewRepo {
	return d.productViewRepo
}

func (d Database) ServiceCategoryRepo() *ServiceCategoryRepo {
	return d.serviceCategoryRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

func (d Database) ServiceImageRepo() *ServiceImageRepo {
	return d.serviceImageRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) ServiceViewRepo() *ServiceViewRepo {
	return d.serviceViewRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectCategoryRepo() *ProjectCategoryRepo {
	return d.projectCategoryRepo
}

func (d Database) ProjectTagRepo() *ProjectTagRepo {
	return d.projectTagRepo
}

func (d Database) TaskRepo() *TaskRepo {
	return d.taskRepo
}
