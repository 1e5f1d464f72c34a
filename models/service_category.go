package models

// ServiceCategoryType enumerates the fixed top-level service lines the
// business offers. Each type maps to exactly one category row.
type ServiceCategoryType string

const (
	CategoryDemontageMontage ServiceCategoryType = "demontage_montage"
	CategoryMobelVerkauf     ServiceCategoryType = "mobel_verkauf"
	CategoryAutoAnkauf       ServiceCategoryType = "auto_ankauf"
	CategoryAutowerkstatt    ServiceCategoryType = "autowerkstatt"
	CategoryRenovierung      ServiceCategoryType = "renovierung"
	CategoryEntsorgung       ServiceCategoryType = "entsorgung"
	CategoryTransport        ServiceCategoryType = "transport"
	CategoryImportExport     ServiceCategoryType = "import_export"
)

func (t ServiceCategoryType) Valid() bool {
	switch t {
	case CategoryDemontageMontage, CategoryMobelVerkauf, CategoryAutoAnkauf,
		CategoryAutowerkstatt, CategoryRenovierung, CategoryEntsorgung,
		CategoryTransport, CategoryImportExport:
		return true
	}
	return false
}

// ServiceCategory is a top-level grouping of bookable services.
type ServiceCategory struct {
	Timestamped
	Name         string              `json:"name" db:"name" gorm:"type:text;not null"`
	Slug         string              `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	CategoryType ServiceCategoryType `json:"category_type" db:"category_type" gorm:"type:text;not null;uniqueIndex"`
	Icon         string              `json:"icon,omitempty" db:"icon" gorm:"type:text"`
	Description  string              `json:"description" db:"description" gorm:"type:text;not null"`
	ImageURL     string              `json:"image_url,omitempty" db:"image_url" gorm:"type:text"`

	DisplayOrder   int  `json:"display_order" db:"display_order" gorm:"not null;default:0"`
	IsActive       bool `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	ShowOnHomepage bool `json:"show_on_homepage" db:"show_on_homepage" gorm:"not null;default:false"`

	MetaTitle       string `json:"meta_title,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription string `json:"meta_description,omitempty" db:"meta_description" gorm:"type:text"`
	MetaKeywords    string `json:"meta_keywords,omitempty" db:"meta_keywords" gorm:"type:text"`

	Services []Service `json:"-" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}
