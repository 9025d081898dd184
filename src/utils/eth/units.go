package eth

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

var (
	weiPerEther = big.NewInt(params.Ether)

	// Plain decimal, no sign, exponent or fraction notation
	decimalAmount = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Converts a decimal ether amount (e.g. "1.5") to wei
func EtherToWei(amount string) (wei *big.Int, err error) {
	amount = strings.TrimSpace(amount)
	if !decimalAmount.MatchString(amount) {
		return nil, fmt.Errorf("invalid amount: %q", amount)
	}

	value, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %q", amount)
	}

	value.Mul(value, new(big.Rat).SetInt(weiPerEther))
	if !value.IsInt() {
		return nil, fmt.Errorf("amount has more than 18 decimals: %q", amount)
	}

	return new(big.Int).Set(value.Num()), nil
}

// Converts wei to a decimal ether amount without trailing zeros
func WeiToEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	abs := new(big.Int).Abs(wei)
	whole, fraction := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))

	sign := ""
	if wei.Sign() < 0 {
		sign = "-"
	}

	if fraction.Sign() == 0 {
		return sign + whole.String()
	}

	digits := fraction.String()
	digits = strings.Repeat("0", 18-len(digits)) + digits
	return sign + whole.String() + "." + strings.TrimRight(digits, "0")
}
