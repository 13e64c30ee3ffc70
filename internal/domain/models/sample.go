package models

// SampleProducts is the bulk-seed data set: twenty predefined products spread
// across several categories and suppliers, useful for demos and manual testing.
var SampleProducts = []Product{
	{SKU: "SKU1001", Name: "Classic T-Shirt", Category: "Apparel", Quantity: 120, Price: 399.0, Supplier: "Textile Co", LastRestock: "2025-10-01"},
	{SKU: "SKU1002", Name: "Slim Jeans", Category: "Apparel", Quantity: 45, Price: 1299.0, Supplier: "Denim Inc", LastRestock: "2025-09-15"},
	{SKU: "SKU1003", Name: "Running Shoes", Category: "Footwear", Quantity: 60, Price: 2199.0, Supplier: "RunFast", LastRestock: "2025-10-20"},
	{SKU: "SKU1004", Name: "Formal Shoes", Category: "Footwear", Quantity: 25, Price: 2499.0, Supplier: "LeatherWorks", LastRestock: "2025-08-30"},
	{SKU: "SKU1005", Name: "Baseball Cap", Category: "Accessories", Quantity: 200, Price: 199.0, Supplier: "CapMakers", LastRestock: "2025-11-01"},
	{SKU: "SKU1006", Name: "Wrist Watch", Category: "Accessories", Quantity: 30, Price: 3499.0, Supplier: "TimeKeep", LastRestock: "2025-07-10"},
	{SKU: "SKU1007", Name: "Leather Belt", Category: "Accessories", Quantity: 80, Price: 499.0, Supplier: "BeltCo", LastRestock: "2025-10-05"},
	{SKU: "SKU1008", Name: "Hoodie", Category: "Apparel", Quantity: 70, Price: 999.0, Supplier: "WarmWear", LastRestock: "2025-09-25"},
	{SKU: "SKU1009", Name: "Socks (Pack of 3)", Category: "Apparel", Quantity: 300, Price: 249.0, Supplier: "SockHouse", LastRestock: "2025-10-11"},
	{SKU: "SKU1010", Name: "Backpack", Category: "Bags", Quantity: 40, Price: 1599.0, Supplier: "BagWorld", LastRestock: "2025-09-01"},
	{SKU: "SKU1011", Name: "Laptop Sleeve", Category: "Bags", Quantity: 75, Price: 699.0, Supplier: "CaseWorks", LastRestock: "2025-08-20"},
	{SKU: "SKU1012", Name: "Water Bottle", Category: "Home", Quantity: 150, Price: 299.0, Supplier: "HydroLtd", LastRestock: "2025-10-18"},
	{SKU: "SKU1013", Name: "Wireless Earbuds", Category: "Electronics", Quantity: 55, Price: 3299.0, Supplier: "SoundTech", LastRestock: "2025-11-02"},
	{SKU: "SKU1014", Name: "Phone Charger", Category: "Electronics", Quantity: 180, Price: 399.0, Supplier: "ChargeIt", LastRestock: "2025-10-28"},
	{SKU: "SKU1015", Name: "Notebook A4", Category: "Stationery", Quantity: 500, Price: 49.0, Supplier: "PaperGoods", LastRestock: "2025-09-10"},
	{SKU: "SKU1016", Name: "Ballpoint Pen", Category: "Stationery", Quantity: 1000, Price: 19.0, Supplier: "WriteWell", LastRestock: "2025-11-03"},
	{SKU: "SKU1017", Name: "Desk Lamp", Category: "Home", Quantity: 35, Price: 899.0, Supplier: "BrightHome", LastRestock: "2025-08-27"},
	{SKU: "SKU1018", Name: "Coffee Mug", Category: "Home", Quantity: 220, Price: 249.0, Supplier: "CeramicArt", LastRestock: "2025-10-30"},
	{SKU: "SKU1019", Name: "USB Flash Drive 32GB", Category: "Electronics", Quantity: 95, Price: 599.0, Supplier: "StoragePlus", LastRestock: "2025-09-05"},
	{SKU: "SKU1020", Name: "Travel Adapter", Category: "Electronics", Quantity: 60, Price: 349.0, Supplier: "GlobeTech", LastRestock: "2025-10-12"},
}
