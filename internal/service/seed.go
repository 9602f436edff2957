package service

import "github.com/macroprep/macroprep-cli/internal/model"

// masterIngredients is the factory catalog. Piece items carry per-piece
// values; everything else is per 100 g or ml.
var masterIngredients = []IngredientInput{
	{Name: "Chicken Breast (Raw)", Category: "protein", Calories: 110, ProteinG: 23, CarbsG: 0, FatG: 1.2, Measure: model.MeasureMass},
	{Name: "Chicken Thigh (Raw)", Category: "protein", Calories: 177, ProteinG: 20, CarbsG: 0, FatG: 10, Measure: model.MeasureMass},
	{Name: "Ground Beef (90/10)", Category: "protein", Calories: 217, ProteinG: 26, CarbsG: 0, FatG: 12, Measure: model.MeasureMass},
	{Name: "Ground Beef (80/20)", Category: "protein", Calories: 254, ProteinG: 17, CarbsG: 0, FatG: 20, Measure: model.MeasureMass},
	{Name: "Steak (Sirloin)", Category: "protein", Calories: 244, ProteinG: 27, CarbsG: 0, FatG: 14, Measure: model.MeasureMass},
	{Name: "Salmon (Raw)", Category: "protein", Calories: 208, ProteinG: 20, CarbsG: 0, FatG: 13, Measure: model.MeasureMass},
	{Name: "White Fish (Cod/Tilapia)", Category: "protein", Calories: 82, ProteinG: 18, CarbsG: 0, FatG: 0.7, Measure: model.MeasureMass},
	{Name: "Tuna (Canned in Water)", Category: "protein", Calories: 116, ProteinG: 26, CarbsG: 0, FatG: 1, Measure: model.MeasureMass},
	{Name: "Shrimp (Raw)", Category: "protein", Calories: 99, ProteinG: 24, CarbsG: 0.2, FatG: 0.3, Measure: model.MeasureMass},
	{Name: "Pork Chop (Lean)", Category: "protein", Calories: 143, ProteinG: 26, CarbsG: 0, FatG: 3.5, Measure: model.MeasureMass},
	{Name: "Turkey Breast", Category: "protein", Calories: 135, ProteinG: 30, CarbsG: 0, FatG: 1, Measure: model.MeasureMass},
	{Name: "Egg (Large)", Category: "protein", Calories: 72, ProteinG: 6.3, CarbsG: 0.4, FatG: 5, Measure: model.MeasurePiece, PieceMassG: 50},
	{Name: "Egg White", Category: "protein", Calories: 17, ProteinG: 3.6, CarbsG: 0.2, FatG: 0, Measure: model.MeasurePiece, PieceMassG: 33},
	{Name: "Tofu (Firm)", Category: "protein", Calories: 144, ProteinG: 17, CarbsG: 3, FatG: 9, Measure: model.MeasureMass},
	{Name: "Tempeh", Category: "protein", Calories: 192, ProteinG: 20, CarbsG: 7.6, FatG: 11, Measure: model.MeasureMass},
	{Name: "Lentils (Dry)", Category: "protein", Calories: 352, ProteinG: 25, CarbsG: 63, FatG: 1, Measure: model.MeasureMass},
	{Name: "Chickpeas (Canned)", Category: "protein", Calories: 139, ProteinG: 7, CarbsG: 23, FatG: 2, Measure: model.MeasureMass},
	{Name: "Whey Protein (Standard)", Category: "protein", Calories: 390, ProteinG: 78, CarbsG: 6, FatG: 6, Measure: model.MeasureMass},
	{Name: "Whey Isolate", Category: "protein", Calories: 370, ProteinG: 90, CarbsG: 1, FatG: 1, Measure: model.MeasureMass},
	{Name: "Casein Protein", Category: "protein", Calories: 360, ProteinG: 75, CarbsG: 4, FatG: 2, Measure: model.MeasureMass},
	{Name: "Pea Protein (Vegan)", Category: "protein", Calories: 380, ProteinG: 75, CarbsG: 3, FatG: 6, Measure: model.MeasureMass},
	{Name: "Creatine Monohydrate", Category: "other", Calories: 0, ProteinG: 0, CarbsG: 0, FatG: 0, Measure: model.MeasureMass},
	{Name: "Almonds (Raw)", Category: "fat", Calories: 579, ProteinG: 21, CarbsG: 22, FatG: 50, Measure: model.MeasureMass},
	{Name: "Walnuts", Category: "fat", Calories: 654, ProteinG: 15, CarbsG: 14, FatG: 65, Measure: model.MeasureMass},
	{Name: "Pistachios", Category: "fat", Calories: 560, ProteinG: 20, CarbsG: 28, FatG: 45, Measure: model.MeasureMass},
	{Name: "Cashews", Category: "fat", Calories: 553, ProteinG: 18, CarbsG: 30, FatG: 44, Measure: model.MeasureMass},
	{Name: "Peanuts", Category: "fat", Calories: 567, ProteinG: 26, CarbsG: 16, FatG: 49, Measure: model.MeasureMass},
	{Name: "Pumpkin Seeds", Category: "fat", Calories: 559, ProteinG: 30, CarbsG: 10, FatG: 49, Measure: model.MeasureMass},
	{Name: "Chia Seeds", Category: "fat", Calories: 486, ProteinG: 17, CarbsG: 42, FatG: 31, Measure: model.MeasureMass},
	{Name: "Dates (Medjool)", Category: "carb", Calories: 277, ProteinG: 1.8, CarbsG: 75, FatG: 0.2, Measure: model.MeasurePiece, PieceMassG: 24},
	{Name: "Raisins", Category: "carb", Calories: 299, ProteinG: 3, CarbsG: 79, FatG: 0.5, Measure: model.MeasureMass},
	{Name: "White Rice (Raw)", Category: "carb", Calories: 365, ProteinG: 7, CarbsG: 80, FatG: 0.7, Measure: model.MeasureMass},
	{Name: "Brown Rice (Raw)", Category: "carb", Calories: 367, ProteinG: 7.5, CarbsG: 76, FatG: 3.2, Measure: model.MeasureMass},
	{Name: "Basmati Rice (Raw)", Category: "carb", Calories: 350, ProteinG: 9, CarbsG: 78, FatG: 0.5, Measure: model.MeasureMass},
	{Name: "Oats (Rolled)", Category: "carb", Calories: 379, ProteinG: 13, CarbsG: 68, FatG: 6.5, Measure: model.MeasureMass},
	{Name: "Pasta (Semolina)", Category: "carb", Calories: 371, ProteinG: 13, CarbsG: 75, FatG: 1.5, Measure: model.MeasureMass},
	{Name: "Quinoa (Raw)", Category: "carb", Calories: 368, ProteinG: 14, CarbsG: 64, FatG: 6, Measure: model.MeasureMass},
	{Name: "Potato (White, Raw)", Category: "carb", Calories: 77, ProteinG: 2, CarbsG: 17, FatG: 0.1, Measure: model.MeasureMass},
	{Name: "Sweet Potato (Raw)", Category: "carb", Calories: 86, ProteinG: 1.6, CarbsG: 20, FatG: 0.1, Measure: model.MeasureMass},
	{Name: "Slice of Bread (White)", Category: "carb", Calories: 79, ProteinG: 2.7, CarbsG: 15, FatG: 1, Measure: model.MeasurePiece, PieceMassG: 30},
	{Name: "Slice of Bread (Whole Wheat)", Category: "carb", Calories: 81, ProteinG: 4, CarbsG: 14, FatG: 1, Measure: model.MeasurePiece, PieceMassG: 33},
	{Name: "Tortilla (Flour, Medium)", Category: "carb", Calories: 140, ProteinG: 4, CarbsG: 24, FatG: 3.5, Measure: model.MeasurePiece, PieceMassG: 45},
	{Name: "Bagel (Plain)", Category: "carb", Calories: 250, ProteinG: 10, CarbsG: 49, FatG: 1.5, Measure: model.MeasurePiece, PieceMassG: 95},
	{Name: "Olive Oil", Category: "fat", Calories: 884, ProteinG: 0, CarbsG: 0, FatG: 100, Measure: model.MeasureVolume},
	{Name: "Coconut Oil", Category: "fat", Calories: 862, ProteinG: 0, CarbsG: 0, FatG: 100, Measure: model.MeasureMass},
	{Name: "Butter", Category: "fat", Calories: 717, ProteinG: 0.9, CarbsG: 0.1, FatG: 81, Measure: model.MeasureMass},
	{Name: "Avocado", Category: "fat", Calories: 160, ProteinG: 2, CarbsG: 8.5, FatG: 15, Measure: model.MeasureMass},
	{Name: "Peanut Butter", Category: "fat", Calories: 588, ProteinG: 25, CarbsG: 20, FatG: 50, Measure: model.MeasureMass},
	{Name: "Whole Milk", Category: "other", Calories: 61, ProteinG: 3.2, CarbsG: 4.8, FatG: 3.3, Measure: model.MeasureVolume},
	{Name: "Skim Milk (0%)", Category: "other", Calories: 34, ProteinG: 3.4, CarbsG: 5, FatG: 0.1, Measure: model.MeasureVolume},
	{Name: "Almond Milk (Unsweetened)", Category: "other", Calories: 13, ProteinG: 0.4, CarbsG: 0.1, FatG: 1.1, Measure: model.MeasureVolume},
	{Name: "Oat Milk", Category: "other", Calories: 45, ProteinG: 0.8, CarbsG: 8, FatG: 1.5, Measure: model.MeasureVolume},
	{Name: "Greek Yogurt (0% Fat)", Category: "protein", Calories: 59, ProteinG: 10, CarbsG: 3.6, FatG: 0.4, Measure: model.MeasureMass},
	{Name: "Cheddar Cheese", Category: "fat", Calories: 402, ProteinG: 25, CarbsG: 1.3, FatG: 33, Measure: model.MeasureMass},
	{Name: "Mozzarella (Low Moisture)", Category: "fat", Calories: 300, ProteinG: 22, CarbsG: 2, FatG: 22, Measure: model.MeasureMass},
	{Name: "Cottage Cheese (Low Fat)", Category: "protein", Calories: 72, ProteinG: 12, CarbsG: 3, FatG: 1, Measure: model.MeasureMass},
	{Name: "Banana (Medium)", Category: "carb", Calories: 105, ProteinG: 1.3, CarbsG: 27, FatG: 0.4, Measure: model.MeasurePiece, PieceMassG: 118},
	{Name: "Apple (Medium)", Category: "carb", Calories: 95, ProteinG: 0.5, CarbsG: 25, FatG: 0.3, Measure: model.MeasurePiece, PieceMassG: 182},
	{Name: "Orange", Category: "carb", Calories: 62, ProteinG: 1.2, CarbsG: 15, FatG: 0.2, Measure: model.MeasurePiece, PieceMassG: 130},
	{Name: "Blueberries", Category: "carb", Calories: 57, ProteinG: 0.7, CarbsG: 14, FatG: 0.3, Measure: model.MeasureMass},
	{Name: "Strawberries", Category: "carb", Calories: 32, ProteinG: 0.7, CarbsG: 7.7, FatG: 0.3, Measure: model.MeasureMass},
	{Name: "Broccoli", Category: "veg", Calories: 34, ProteinG: 2.8, CarbsG: 7, FatG: 0.4, Measure: model.MeasureMass},
	{Name: "Spinach (Raw)", Category: "veg", Calories: 23, ProteinG: 2.9, CarbsG: 3.6, FatG: 0.4, Measure: model.MeasureMass},
	{Name: "Carrots", Category: "veg", Calories: 41, ProteinG: 0.9, CarbsG: 10, FatG: 0.2, Measure: model.MeasureMass},
	{Name: "Onion", Category: "veg", Calories: 40, ProteinG: 1.1, CarbsG: 9, FatG: 0.1, Measure: model.MeasureMass},
	{Name: "Red Bell Pepper", Category: "veg", Calories: 31, ProteinG: 1, CarbsG: 6, FatG: 0.3, Measure: model.MeasureMass},
	{Name: "Tomato", Category: "veg", Calories: 18, ProteinG: 0.9, CarbsG: 3.9, FatG: 0.2, Measure: model.MeasureMass},
	{Name: "Cucumber", Category: "veg", Calories: 15, ProteinG: 0.7, CarbsG: 3.6, FatG: 0.1, Measure: model.MeasureMass},
	{Name: "Green Beans", Category: "veg", Calories: 31, ProteinG: 1.8, CarbsG: 7, FatG: 0.2, Measure: model.MeasureMass},
	{Name: "Mushrooms", Category: "veg", Calories: 22, ProteinG: 3.1, CarbsG: 3.3, FatG: 0.3, Measure: model.MeasureMass},
	{Name: "Honey", Category: "carb", Calories: 304, ProteinG: 0.3, CarbsG: 82, FatG: 0, Measure: model.MeasureMass},
	{Name: "Maple Syrup", Category: "carb", Calories: 260, ProteinG: 0, CarbsG: 67, FatG: 0, Measure: model.MeasureVolume},
	{Name: "Soy Sauce", Category: "other", Calories: 53, ProteinG: 8, CarbsG: 5, FatG: 0, Measure: model.MeasureVolume},
	{Name: "Mayonnaise", Category: "fat", Calories: 680, ProteinG: 1, CarbsG: 1, FatG: 75, Measure: model.MeasureMass},
	{Name: "Ketchup", Category: "carb", Calories: 111, ProteinG: 1, CarbsG: 26, FatG: 0, Measure: model.MeasureMass},
}
