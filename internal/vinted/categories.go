package vinted

// Category is one node of the public category tree used for search
// filtering.
type Category struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Children []Category `json:"children,omitempty"`
}

// categoryTree holds the commonly used top-level categories and their IDs.
// The tree is static reference data; Vinted's full taxonomy is much larger
// but these cover the filters callers actually use.
var categoryTree = []Category{
	{ID: 1, Name: "Women", Children: []Category{
		{ID: 1904, Name: "Dresses"},
		{ID: 1907, Name: "Tops & T-shirts"},
		{ID: 1908, Name: "Sweaters & Knitwear"},
		{ID: 1909, Name: "Coats & Jackets"},
		{ID: 1910, Name: "Jeans"},
		{ID: 1911, Name: "Trousers"},
		{ID: 1912, Name: "Skirts"},
		{ID: 1913, Name: "Shorts"},
		{ID: 1914, Name: "Swimwear"},
		{ID: 1915, Name: "Lingerie"},
		{ID: 1916, Name: "Shoes"},
		{ID: 1917, Name: "Bags"},
		{ID: 1918, Name: "Accessories"},
		{ID: 1919, Name: "Jewellery"},
	}},
	{ID: 5, Name: "Men", Children: []Category{
		{ID: 2050, Name: "T-shirts"},
		{ID: 2051, Name: "Shirts"},
		{ID: 2052, Name: "Sweaters & Hoodies"},
		{ID: 2053, Name: "Coats & Jackets"},
		{ID: 2054, Name: "Jeans"},
		{ID: 2055, Name: "Trousers"},
		{ID: 2056, Name: "Shorts"},
		{ID: 2057, Name: "Shoes"},
		{ID: 2058, Name: "Bags"},
		{ID: 2059, Name: "Accessories"},
	}},
	{ID: 29, Name: "Kids", Children: []Category{
		{ID: 1100, Name: "Girls Clothing"},
		{ID: 1200, Name: "Boys Clothing"},
		{ID: 1300, Name: "Baby Clothing"},
		{ID: 1400, Name: "Kids Shoes"},
	}},
	{ID: 1193, Name: "Home & Living", Children: []Category{
		{ID: 1500, Name: "Decoration"},
		{ID: 1501, Name: "Kitchen"},
		{ID: 1502, Name: "Bedding"},
		{ID: 1503, Name: "Bathroom"},
	}},
	{ID: 1194, Name: "Entertainment", Children: []Category{
		{ID: 1600, Name: "Books"},
		{ID: 1601, Name: "Games & Consoles"},
		{ID: 1602, Name: "Music & Movies"},
	}},
	{ID: 1195, Name: "Electronics", Children: []Category{
		{ID: 1700, Name: "Phones"},
		{ID: 1701, Name: "Tablets"},
		{ID: 1702, Name: "Laptops"},
		{ID: 1703, Name: "Audio"},
		{ID: 1704, Name: "Cameras"},
	}},
}

// Categories returns the static category tree.
func Categories() []Category {
	return categoryTree
}
