package readfiles

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/poromech/gopore/mporous"
)

// ReadProperties loads a medium properties file: a name line followed by
// nine whitespace separated numbers in the order G, K, Ks, rho_s, Kf, phi,
// kappa, mu, rho_f. Values may continue across lines. A missing or
// malformed file is fatal.
func ReadProperties(filename string, verbose bool) (name string, props mporous.Properties) {
	var (
		file *os.File
		err  error
	)
	if verbose {
		fmt.Printf("Reading medium properties file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()
	reader := bufio.NewReader(file)

	for name == "" {
		line, rerr := reader.ReadString('\n')
		name = strings.TrimSpace(line)
		if rerr != nil && name == "" {
			panic(fmt.Errorf("properties file %s has no medium name line", filename))
		}
	}

	vals := []*float64{
		&props.G, &props.K, &props.Ks, &props.RhoS, &props.Kf,
		&props.Phi, &props.Kappa, &props.Mu, &props.RhoF,
	}
	for i, v := range vals {
		if _, err = fmt.Fscan(reader, v); err != nil {
			panic(fmt.Errorf("properties file %s: reading value %d of 9: %s", filename, i+1, err))
		}
	}
	if verbose {
		fmt.Printf("Medium: %s\n", name)
		fmt.Printf("G = %8.3e, K = %8.3e, Ks = %8.3e\n", props.G, props.K, props.Ks)
		fmt.Printf("Kf = %8.3e, phi = %5.3f, kappa = %8.3e, mu = %8.3e\n",
			props.Kf, props.Phi, props.Kappa, props.Mu)
		fmt.Printf("rho_s = %8.3f, rho_f = %8.3f\n", props.RhoS, props.RhoF)
	}
	return
}
