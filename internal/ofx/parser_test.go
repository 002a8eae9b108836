package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/testutil"
	"github.com/Veraticus/harmony/internal/tracker"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>INR
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-250.50
<FITID>2024011501
<NAME>UPI/401512345678/Campus Canteen/okaxis
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>5000.00
<FITID>2024012001
<NAME>SCHOLARSHIP CREDIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>ATM
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<NAME>ATM WDL MG ROAD
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>INR
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>POS PURCHASE AMAZON.IN
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 3,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(tt.ofxData))
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
			for _, tx := range transactions {
				assert.NoError(t, model.Validate(&tx))
			}
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	transactions, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	canteen := transactions[0]
	assert.Equal(t, "ofx:1234567890:2024011501", canteen.ID)
	assert.Equal(t, "Campus Canteen", canteen.Description)
	assert.Equal(t, -250.50, canteen.Amount)
	assert.True(t, canteen.Expense())
	assert.Equal(t, model.DefaultCategory, canteen.Category)
	assert.Equal(t, SourceOFX, canteen.Source)
	assert.Equal(t, "2024-01-15", canteen.Date.String())

	scholarship := transactions[1]
	assert.Equal(t, 5000.00, scholarship.Amount)
	assert.Equal(t, "Income", scholarship.Category)
	assert.Equal(t, "SCHOLARSHIP CREDIT", scholarship.Description)

	atm := transactions[2]
	assert.Equal(t, -500.00, atm.Amount)
	assert.Equal(t, "Cash", atm.Category)
}

func TestParseCreditCardTransactions(t *testing.T) {
	transactions, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "ofx:4111111111111111:CC2024011001", transactions[0].ID)
	assert.Equal(t, "AMAZON.IN", transactions[0].Description)
	assert.Equal(t, -45.99, transactions[0].Amount)

	assert.Equal(t, "NETFLIX.COM", transactions[1].Description)
	assert.Equal(t, -15.00, transactions[1].Amount)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser(nil)

	tests := []struct {
		name     string
		input    string
		memo     string
		expected string
	}{
		{name: "remove POS prefix", input: "POS PURCHASE STARBUCKS", expected: "STARBUCKS"},
		{name: "remove DEBIT CARD prefix", input: "DEBIT CARD PURCHASE BIG BAZAAR", expected: "BIG BAZAAR"},
		{name: "remove NEFT prefix", input: "NEFT HOSTEL FEES", expected: "HOSTEL FEES"},
		{name: "UPI narration", input: "UPI/412345678901/Chai Point/paytm", expected: "Chai Point"},
		{name: "generic name uses memo", input: "PAYMENT", memo: "Library fine", expected: "Library fine"},
		{name: "keep clean name", input: "NETFLIX.COM", expected: "NETFLIX.COM"},
		{name: "trim whitespace", input: "  AMAZON.IN  ", expected: "AMAZON.IN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.input),
				Memo: ofxgo.String(tt.memo),
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	student, err := tracker.New(testutil.NewFileStore(t), "asha",
		tracker.WithClock(func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)

	parser := NewParser(nil)
	for range 2 {
		txns, err := parser.ParseFile(ctx, strings.NewReader(sampleBankOFX))
		require.NoError(t, err)
		_, err = student.Finance.Import(ctx, txns)
		require.NoError(t, err)
	}

	stored, err := student.Finance.Transactions(ctx, tracker.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	txns, err := parser.ParseFile(ctx, strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	added, err := student.Finance.Import(ctx, txns)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestAccounts(t *testing.T) {
	parser := NewParser(nil)

	accounts, err := parser.Accounts(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)

	accounts, err = parser.Accounts(strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}
