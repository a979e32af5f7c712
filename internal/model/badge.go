package model

// Badge kind determines how the badge unlocks.
const (
	KindDefault = "DEFAULT" // always unlocked
	KindSpecial = "SPECIAL" // unlocked by rule satisfaction
	KindEvent   = "EVENT"   // no unlock rule exists
)

// Fixed badge catalog ids.
const (
	BadgeYellow         int64 = 1
	BadgeBlue           int64 = 2
	BadgeGreen          int64 = 3
	BadgePink           int64 = 4
	BadgeRed            int64 = 5
	BadgePlanet         int64 = 6
	BadgeRainbow        int64 = 7
	BadgeMincho         int64 = 8
	BadgeSunny          int64 = 9
	BadgeReadingGlasses int64 = 10
	BadgeIceCream       int64 = 11
	BadgeShamrock       int64 = 12
	BadgeFourLeaf       int64 = 13
	BadgeNoir           int64 = 14
	BadgeCarnation      int64 = 15
)

// Badge 徽章目录（不可变参考数据）
type Badge struct {
	ID               int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name             string `json:"name" gorm:"type:varchar(64);not null"`
	ImageURL         string `json:"image_url" gorm:"type:varchar(255)"`
	ShortDescription string `json:"short_description" gorm:"type:varchar(255)"`
	LongDescription  string `json:"long_description" gorm:"type:text"`
	Kind             string `json:"kind" gorm:"type:varchar(16);index;not null"`
	AcqCondition     string `json:"acq_condition" gorm:"type:varchar(255)"`
}

func (Badge) TableName() string { return "badges" }

func (b *Badge) IsDefault() bool { return b.Kind == KindDefault }
func (b *Badge) IsSpecial() bool { return b.Kind == KindSpecial }
func (b *Badge) IsEvent() bool   { return b.Kind == KindEvent }

// Catalog returns the seed rows for the badge table.
func Catalog() []Badge {
	return []Badge{
		{ID: BadgeYellow, Name: "Yellow", Kind: KindDefault, ShortDescription: "A plain sunny heart."},
		{ID: BadgeBlue, Name: "Blue", Kind: KindDefault, ShortDescription: "A cool-headed heart."},
		{ID: BadgeGreen, Name: "Green", Kind: KindDefault, ShortDescription: "A fresh heart."},
		{ID: BadgePink, Name: "Pink", Kind: KindDefault, ShortDescription: "A fond heart."},
		{ID: BadgeRed, Name: "Red", Kind: KindDefault, ShortDescription: "A passionate heart."},
		{ID: BadgePlanet, Name: "Planet", Kind: KindEvent, ShortDescription: "Launch-event heart."},
		{ID: BadgeRainbow, Name: "Rainbow", Kind: KindSpecial, AcqCondition: "Send every default heart once."},
		{ID: BadgeMincho, Name: "Mincho", Kind: KindSpecial, AcqCondition: "Send 5 blue hearts."},
		{ID: BadgeSunny, Name: "Sunny", Kind: KindSpecial, AcqCondition: "Send 5 yellow hearts."},
		{ID: BadgeReadingGlasses, Name: "Reading Glasses", Kind: KindSpecial, AcqCondition: "Send 3 pink hearts to the same person."},
		{ID: BadgeIceCream, Name: "Ice Cream", Kind: KindSpecial, AcqCondition: "Receive 3 sunny hearts."},
		{ID: BadgeShamrock, Name: "Shamrock", Kind: KindSpecial, AcqCondition: "Send 3 green hearts."},
		{ID: BadgeFourLeaf, Name: "Four Leaf", Kind: KindSpecial, AcqCondition: "Receive 4 shamrock hearts."},
		{ID: BadgeNoir, Name: "Noir", Kind: KindSpecial, AcqCondition: "Send every default heart twice."},
		{ID: BadgeCarnation, Name: "Carnation", Kind: KindEvent, ShortDescription: "Family-month event heart."},
	}
}
