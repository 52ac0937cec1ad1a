package inventory

import (
	"context"

	"github.com/medstock/medstock/internal/model"
)

// Seed inserts the sample catalog when the repository is empty and returns
// the number of items inserted. A non-empty repository is left untouched.
// The catalog is written in one Persist pass rather than item-by-item
// upserts, so the backing store is hit once per item with no intermediate
// reloads.
func (r *Repository) Seed(ctx context.Context) (int, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if r.Len() > 0 {
		return 0, nil
	}

	catalog := SampleCatalog()
	stamp := r.now().UTC()
	index := make(map[string]int, len(catalog))
	for i := range catalog {
		if err := catalog[i].Validate(); err != nil {
			return 0, err
		}
		catalog[i].LastUpdated = stamp
		index[catalog[i].Code] = i
	}

	r.mu.Lock()
	r.items, r.index = catalog, index
	r.mu.Unlock()

	if err := r.Persist(ctx); err != nil {
		// Memory goes back to empty; a partially written backend is
		// reconciled by the next Load or a rerun of Seed.
		r.mu.Lock()
		r.items, r.index = nil, make(map[string]int)
		r.mu.Unlock()
		return 0, err
	}
	return len(catalog), r.Load(ctx)
}

// SampleCatalog returns the demo pharmacy catalog used to seed an empty
// store.
func SampleCatalog() []model.Item {
	return []model.Item{
		{Code: "PSI001", Name: "Clonazepam 2mg", Category: model.CategoryPsychotropics, Unit: "tablet", Stock: 500, MinStock: 200, DailyConsumption: 15, Price: 0.35, Supplier: "Farmex", Description: "Anxiety and seizure control"},
		{Code: "PSI002", Name: "Diazepam 10mg", Category: model.CategoryPsychotropics, Unit: "tablet", Stock: 300, MinStock: 150, DailyConsumption: 10, Price: 0.25, Supplier: "MedPharma", Description: "Sedative and anxiolytic"},
		{Code: "PSI003", Name: "Midazolam 5mg/ml", Category: model.CategoryPsychotropics, Unit: "ampoule", Stock: 80, MinStock: 50, DailyConsumption: 2.5, Price: 12.90, Supplier: "HospitalCare", Description: "Short-acting anesthetic"},
		{Code: "ANT001", Name: "Amoxicillin 500mg", Category: model.CategoryAntibiotics, Unit: "tablet", Stock: 600, MinStock: 250, DailyConsumption: 20, Price: 0.45, Supplier: "BioMed", Description: "Broad-spectrum antibiotic"},
		{Code: "ANT002", Name: "Ciprofloxacin 500mg", Category: model.CategoryAntibiotics, Unit: "tablet", Stock: 400, MinStock: 200, DailyConsumption: 15, Price: 0.65, Supplier: "MedPharma", Description: "Antibiotic for gram-negative infections"},
		{Code: "ANT003", Name: "Ceftriaxone 1g", Category: model.CategoryAntibiotics, Unit: "vial", Stock: 90, MinStock: 45, DailyConsumption: 3, Price: 15.80, Supplier: "HospitalCare", Description: "Third-generation cephalosporin"},
		{Code: "VAS001", Name: "Norepinephrine 2mg/ml", Category: model.CategoryVasoactive, Unit: "ampoule", Stock: 40, MinStock: 25, DailyConsumption: 1.2, Price: 22.50, Supplier: "HospitalCare", Description: "Vasopressor for septic shock"},
		{Code: "VAS002", Name: "Dobutamine 250mg", Category: model.CategoryVasoactive, Unit: "ampoule", Stock: 30, MinStock: 20, DailyConsumption: 1, Price: 18.35, Supplier: "Farmex", Description: "Inotrope for heart failure"},
		{Code: "VAS003", Name: "Epinephrine 1mg/ml", Category: model.CategoryVasoactive, Unit: "ampoule", Stock: 60, MinStock: 30, DailyConsumption: 1.5, Price: 8.90, Supplier: "BioMed", Description: "Cardiac stimulant for arrest"},
		{Code: "GER001", Name: "Dipyrone 500mg", Category: model.CategoryGeneral, Unit: "tablet", Stock: 800, MinStock: 250, DailyConsumption: 25, Price: 0.15, Supplier: "MedPharma", Description: "Analgesic and antipyretic"},
		{Code: "GER002", Name: "Omeprazole 20mg", Category: model.CategoryGeneral, Unit: "tablet", Stock: 700, MinStock: 200, DailyConsumption: 22, Price: 0.20, Supplier: "Farmex", Description: "Proton pump inhibitor"},
		{Code: "GER003", Name: "Furosemide 40mg", Category: model.CategoryGeneral, Unit: "tablet", Stock: 450, MinStock: 180, DailyConsumption: 12, Price: 0.18, Supplier: "BioMed", Description: "Loop diuretic"},
		{Code: "MAT001", Name: "Syringe 10ml", Category: model.CategoryMaterials, Unit: "unit", Stock: 1200, MinStock: 400, DailyConsumption: 40, Price: 0.65, Supplier: "HospitalCare", Description: "Disposable syringe"},
		{Code: "MAT002", Name: "Needle 40x12", Category: model.CategoryMaterials, Unit: "unit", Stock: 2000, MinStock: 500, DailyConsumption: 60, Price: 0.25, Supplier: "MedicalSupplies", Description: "Disposable needle"},
		{Code: "MAT003", Name: "Macro Drip IV Set", Category: model.CategoryMaterials, Unit: "unit", Stock: 350, MinStock: 150, DailyConsumption: 12, Price: 2.10, Supplier: "HospitalCare", Description: "Infusion set for saline"},
		{Code: "MAT004", Name: "IV Catheter 20G", Category: model.CategoryMaterials, Unit: "unit", Stock: 300, MinStock: 120, DailyConsumption: 10, Price: 3.25, Supplier: "MedicalSupplies", Description: "Catheter for venous access"},
		{Code: "MAT005", Name: "Procedure Gloves M", Category: model.CategoryMaterials, Unit: "box", Stock: 80, MinStock: 35, DailyConsumption: 2.5, Price: 35.90, Supplier: "ProtectCare", Description: "Box of 100 units"},
		{Code: "DIE001", Name: "Standard Enteral Diet", Category: model.CategoryDiets, Unit: "bottle", Stock: 200, MinStock: 80, DailyConsumption: 8, Price: 18.50, Supplier: "NutriMed", Description: "1.0 kcal/ml formula"},
		{Code: "DIE002", Name: "High-Calorie Diet", Category: model.CategoryDiets, Unit: "bottle", Stock: 120, MinStock: 60, DailyConsumption: 5, Price: 24.90, Supplier: "NutriMed", Description: "1.5 kcal/ml formula"},
		{Code: "DIE003", Name: "Diabetic Diet", Category: model.CategoryDiets, Unit: "bottle", Stock: 90, MinStock: 50, DailyConsumption: 4, Price: 27.80, Supplier: "NutriCare", Description: "Low glycemic index formula"},
	}
}
