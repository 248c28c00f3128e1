package domain

type Inquiry struct {
	ID         int64
	PropertyID int64
	Name       string
	Phone      string
	Message    string
}

// InquiryView is an Inquiry joined with the attributes of the listing it refers to.
type InquiryView struct {
	Inquiry
	Location    string
	Sqft        float64
	BHK         int
	Bath        int
	ListedPrice float64
}
