package document

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatRand renders a monetary amount for display: two decimal places,
// grouped thousands, rand symbol. Rounding happens here and only here.
func FormatRand(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()

	return printer.Sprintf("R%.2f", f)
}

// FormatDate renders dates the way the practice writes them.
func FormatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// Template funcs accept pointers too; optional invoice fields arrive as
// *decimal.Decimal and *time.Time.
var docTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"rand": func(v any) string {
		switch d := v.(type) {
		case decimal.Decimal:
			return FormatRand(d)
		case *decimal.Decimal:
			if d != nil {
				return FormatRand(*d)
			}
		}

		return ""
	},
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			return FormatDate(t)
		case *time.Time:
			if t != nil {
				return FormatDate(*t)
			}
		}

		return ""
	},
	"upper": strings.ToUpper,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{upper (printf "%s" .Type)}} {{.Number}}</title>
<style>
body { font-family: Georgia, serif; margin: 40px; color: #222; position: relative; }
header { border-bottom: 3px solid #1a3c6e; padding-bottom: 12px; }
h1 { margin: 0; color: #1a3c6e; }
.meta { float: right; text-align: right; font-size: 0.9em; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
th, td { border-bottom: 1px solid #ccc; padding: 8px; text-align: left; }
th { background: #f0f3f8; }
td.amount, th.amount { text-align: right; }
.totals { margin-top: 16px; width: 40%; margin-left: auto; }
.totals td { border: none; padding: 4px 8px; }
.totals .grand td { border-top: 2px solid #1a3c6e; font-weight: bold; }
.banking { margin-top: 32px; font-size: 0.9em; color: #444; }
.watermark { position: fixed; top: 40%; left: 15%; font-size: 96px; color: rgba(200, 40, 40, 0.15); transform: rotate(-25deg); pointer-events: none; }
</style>
</head>
<body>
{{if .Watermarked}}<div class="watermark">DRAFT</div>{{end}}
<header>
<div class="meta">
{{- if eq .Type "quotation"}}
<p><strong>Quotation {{.Number}}</strong></p>
{{- else}}
<p><strong>Invoice {{.Number}}</strong></p>
<p>Quotation ref {{.LinkNo}}</p>
{{- end}}
<p>Date: {{date .Date}}</p>
{{- if .DueDate}}
<p>Due: {{date .DueDate}}</p>
{{- end}}
</div>
<h1>` + PracticeName + `</h1>
<p>` + PracticeNumber + `<br>` + PracticeAddr + `<br>` + PracticePhone + ` &middot; ` + PracticeEmail + `</p>
</header>

<p><strong>Claimant:</strong> {{.Claimant}}</p>
{{- if .Title}}
<p><strong>Re:</strong> {{.Title}}</p>
{{- end}}

<table>
<tr><th>ICD-10</th><th>Description</th><th>NAPPI</th><th>SAOPA</th><th class="amount">Qty</th><th class="amount">Unit price</th><th class="amount">Total</th></tr>
{{- range .LineItems}}
<tr>
<td>{{.ICD10Code}}</td>
<td>{{.Description}}</td>
<td>{{.NAPPICode}}</td>
<td>{{.SAOPACode}}</td>
<td class="amount">{{.Quantity}}</td>
<td class="amount">{{rand .PricePerUnit}}</td>
<td class="amount">{{rand .Total}}</td>
</tr>
{{- end}}
</table>

<table class="totals">
<tr><td>Subtotal</td><td class="amount">{{rand .Subtotal}}</td></tr>
<tr><td>VAT (15%)</td><td class="amount">{{rand .VATAmount}}</td></tr>
<tr class="grand"><td>Total</td><td class="amount">{{rand .Total}}</td></tr>
{{- if .AmountPaid}}
<tr><td>Paid to date</td><td class="amount">{{rand .AmountPaid}}</td></tr>
<tr><td>Amount due</td><td class="amount">{{rand .AmountDue}}</td></tr>
{{- end}}
</table>

{{- if eq .Type "invoice"}}
<div class="banking">
<p><strong>Banking details</strong><br>
` + BankName + `<br>
Account ` + BankAccount + `<br>
Branch ` + BankBranch + `</p>
<p>Please use the invoice number as payment reference.</p>
</div>
{{- end}}
</body>
</html>
`))

// Render writes the printable HTML for the view.
func Render(w io.Writer, v View) error {
	if err := docTemplate.Execute(w, v); err != nil {
		return fmt.Errorf("rendering %s %s: %w", v.Type, v.Number, err)
	}

	return nil
}
