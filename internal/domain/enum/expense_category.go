package enum

// ExpenseCategory is the closed set of categories an expense can be tagged with
type ExpenseCategory string

const (
	ExpenseCategoryRent        ExpenseCategory = "rent"
	ExpenseCategoryUtilities   ExpenseCategory = "utilities"
	ExpenseCategorySalary      ExpenseCategory = "salary"
	ExpenseCategorySupplies    ExpenseCategory = "supplies"
	ExpenseCategoryMarketing   ExpenseCategory = "marketing"
	ExpenseCategoryTransport   ExpenseCategory = "transport"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryFood        ExpenseCategory = "food"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// ExpenseCategories lists all valid categories, for validation and UI pickers
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryRent,
		ExpenseCategoryUtilities,
		ExpenseCategorySalary,
		ExpenseCategorySupplies,
		ExpenseCategoryMarketing,
		ExpenseCategoryTransport,
		ExpenseCategoryMaintenance,
		ExpenseCategoryFood,
		ExpenseCategoryOther,
	}
}

// IsValid reports whether the category is a known value
func (c ExpenseCategory) IsValid() bool {
	for _, v := range ExpenseCategories() {
		if c == v {
			return true
		}
	}
	return false
}

func (c ExpenseCategory) String() string {
	return string(c)
}
