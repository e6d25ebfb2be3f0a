package invoice

import (
	"encoding/json"
	"fmt"
	"math"

	"gstflow/internal/domain"
)

const chargeTypeNetTotal = "On Net Total"

// taxLines derives the GST charge rows for built items. Intra-state supplies
// split into CGST+SGST at half the nominal rate each; everything else gets a
// single IGST line at the full rate. Items without a positive GST rate
// produce no lines.
//
// Rounding order is load-bearing: taxable value to 2 decimals first, the half
// rate to 6, then each amount to 2. GST amounts are legally exact to the
// paisa, so the stages must not be reordered or fused.
func taxLines(items []domain.InvoiceItem, intraState bool, companyAbbr string) []domain.TaxLine {
	var taxes []domain.TaxLine
	for _, it := range items {
		if it.GSTRate <= 0 {
			continue
		}
		taxable := round2(it.Qty * it.Rate)
		key := it.ItemCode
		if key == "" {
			key = it.ItemName
		}

		if intraState {
			halfRate := round6(it.GSTRate / 2)
			halfAmount := round2(taxable * halfRate / 100)
			taxes = append(taxes,
				domain.TaxLine{
					ChargeType:        chargeTypeNetTotal,
					AccountHead:       fmt.Sprintf("Output Tax CGST - %s", companyAbbr),
					Description:       fmt.Sprintf("CGST @ %v%%", halfRate),
					Rate:              halfRate,
					ItemWiseTaxDetail: taxDetail(key, halfRate, halfAmount),
				},
				domain.TaxLine{
					ChargeType:        chargeTypeNetTotal,
					AccountHead:       fmt.Sprintf("Output Tax SGST - %s", companyAbbr),
					Description:       fmt.Sprintf("SGST @ %v%%", halfRate),
					Rate:              halfRate,
					ItemWiseTaxDetail: taxDetail(key, halfRate, halfAmount),
				},
			)
			continue
		}

		amount := round2(taxable * it.GSTRate / 100)
		taxes = append(taxes, domain.TaxLine{
			ChargeType:        chargeTypeNetTotal,
			AccountHead:       fmt.Sprintf("Output Tax IGST - %s", companyAbbr),
			Description:       fmt.Sprintf("IGST @ %v%%", it.GSTRate),
			Rate:              it.GSTRate,
			ItemWiseTaxDetail: taxDetail(key, it.GSTRate, amount),
		})
	}
	return taxes
}

// taxDetail encodes the per-item [rate, amount] payload keyed by item code.
func taxDetail(key string, rate, amount float64) string {
	b, _ := json.Marshal(map[string][2]float64{key: {rate, amount}})
	return string(b)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
