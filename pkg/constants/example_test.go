package constants_test

import (
	"fmt"
	"time"

	"github.com/fioriscope/fioriscope/pkg/constants"
)

// Example shows how the export constants compose a workbook file name.
func Example() {
	release := "S28OP"
	fmt.Println(constants.FilePrefix + release + constants.FileExtension)
	fmt.Println(constants.SheetName)
	// Output:
	// Fiori_Apps_Data_S28OP.xlsx
	// Fiori Apps Data
}

// Example_retryLogic demonstrates the backoff schedule derived from the retry constants.
func Example_retryLogic() {
	for i := 0; i < constants.MaxRetries-1; i++ {
		fmt.Printf("attempt %d failed, waiting %v\n", i+1, constants.RetryBackoff*time.Duration(1<<i))
	}
	fmt.Printf("attempt %d failed, giving up\n", constants.MaxRetries)
	// Output:
	// attempt 1 failed, waiting 1s
	// attempt 2 failed, waiting 2s
	// attempt 3 failed, giving up
}
