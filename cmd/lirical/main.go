// Command lirical ranks candidate Mendelian diseases against a patient's
// observed and excluded phenotype terms, optionally combined with genotype
// evidence, by likelihood ratio.
package main

import "os"

func main() {
	os.Exit(Execute())
}
