package label

// documentHeader carries the print stylesheet shared by all label parts.
// Page geometry matches the courier's 100mm x 150mm sticker stock.
const documentHeader = `<style type="text/css">
  @media print {
    @page {
      size: 100mm 150mm;
      padding: 0 !important;
      margin: 0 !important;
    }

    html, body {
      padding: 0 !important;
      margin: 0 !important;
    }

    .sticker-page-wrapper1,
    .sticker-page-wrapper2,
    .sticker-page-wrapper3 {
      font-size: 12px !important;
      height: 100%;
      padding-top: 1.7em !important;
      page-break-after: always;
    }

    .sticker-page-wrapper1 .bar-code,
    .sticker-page-wrapper2 .bar_code_wrap,
    .sticker-page-wrapper3 .bar-code {
      padding: 0 !important;
    }

    .sticker-page-wrapper3 .middle-content {
      font-size: 1.2em !important;
    }

    .sticker_wrapper {
      box-sizing: border-box;
      padding-top: 0 !important;
      padding-bottom: 0 !important;
    }
  }

  .sticker-page-wrapper1,
  .sticker-page-wrapper2,
  .sticker-page-wrapper3 {
    box-sizing: border-box;
    -webkit-text-size-adjust: 100%;
    direction: rtl;
    color: #000;
    background: #fff;
    font: 2.941176471vw/1.5 'Heebo', sans-serif;
    margin: 0;
  }

  @media (min-width: 544px) {
    .sticker-page-wrapper1,
    .sticker-page-wrapper2,
    .sticker-page-wrapper3 {
      font-size: 16px;
    }
  }

  .sticker_wrapper {
    max-width: 35.3125em;
    margin: 0 auto;
    position: relative;
    min-height: 95vh;
  }

  .sticker_wrapper img {
    vertical-align: top;
    max-width: 100%;
    height: auto;
  }

  .bar-code {
    margin: 0 auto;
    width: 14.4375em;
    padding: 1em 0;
  }

  .bar-code img {
    width: 100%;
  }

  .sticker_wrapper table {
    width: 100%;
    border: 1px solid #000;
    border-collapse: collapse;
  }

  .sticker_wrapper table th,
  .sticker_wrapper table td {
    border: 1px solid #000;
    padding: 0.5em 1.25em 0.4375em;
    word-break: break-word;
  }

  .sticker-page-wrapper1 table tbody th {
    width: 55.2%;
    text-align: right;
    font-weight: 500;
    padding-right: 2.125em !important;
  }

  .sticker-page-wrapper1 tfoot td {
    background: #eaebeb;
    text-align: center;
  }

  .sticker-page-wrapper2 .form_title {
    font-weight: 500;
    margin: 0.5em 0;
  }

  .sticker-page-wrapper2 .checkbox_wrap {
    display: inline-block;
    margin: 0 0.75em;
  }

  .sticker-page-wrapper2 .notes_input {
    width: 100%;
    min-height: 4em;
  }

  .sticker-page-wrapper3 .top-info-text {
    text-align: center;
    border: 1px solid #000;
    padding: 0.25em 0;
  }

  .sticker-page-wrapper3 .middle-content {
    text-align: center;
    padding: 1em 0;
    line-height: 1.9167;
  }

  .sticker-page-wrapper3 .bottom-info-text {
    text-align: center;
    border: 1px solid #000;
    background: #eaeceb;
    font-size: 1.2em;
    display: flex;
    flex-wrap: wrap;
    justify-content: center;
    line-height: 1.9167;
    padding: 0.25em 0 0.375em;
  }

  .sticker-page-wrapper3 .bottom-info-text .data {
    margin: 0 0.75em;
  }

  .text-center {
    text-align: center;
  }

  .bottom_date {
    float: left !important;
  }
</style>
`

// orderTemplate renders the three parts for one order: courier label, return
// slip pages and postal reply card. Literal Hebrew strings are the printed
// label wording.
const orderTemplate = `<div class="sticker-page-wrapper1">
  <div class="sticker_wrapper">
    <div class="bar-code">
      <img src="{{.TrackingBarcode}}" alt="">
      <div style="padding-right: 6px">{{.TrackingNumber}}</div>
    </div>
    <table>
      <tbody>
        <tr>
          <th>מאת {{.SenderCompany}}</th>
          <td><div style="float:right">{{.OrderName}}</div></td>
        </tr>
        <tr>
          <th>{{.SenderAddress}}</th>
          <td>מ-1-1</td>
        </tr>
        <tr>
          <th>עבור: {{.FirstName}} {{.LastName}}</th>
          <td>{{.Address1}} {{.Address2}} {{.City}}</td>
        </tr>
        <tr>
          <th>מספר קו</th>
          <td>{{.LineNumber}}</td>
        </tr>
        <tr>
          <th>טלפון: {{.Phone}}</th>
          <td>רגיל</td>
        </tr>
      </tbody>
      <tfoot>
        <tr>
          <td colspan="2">
            {{.Address1}} {{.Address2}} {{.City}} &nbsp;|&nbsp; טלפון: {{.Phone}} &nbsp;|&nbsp; הערות: {{.Note}}
          </td>
        </tr>
      </tfoot>
    </table>
    <div>1 מתוך {{.PageTotal}} <span class="bottom_date">{{.Date}}</span></div>
  </div>
</div>
{{- $root := . }}
{{- range .ReturnPages }}
<div class="sticker-page-wrapper2">
  <div class="sticker_wrapper">
    <div class="bar_code_wrap">
      <div class="order_detail_info">
        <div class="data_row">עבור: {{$root.FirstName}} {{$root.LastName}}</div>
        <div class="data_row">מס׳ הזמנה: {{$root.OrderName}}</div>
      </div>
      <div class="bar-code">
        <img src="{{$root.TrackingBarcode}}" alt="">
        <div style="padding-right: 6px">{{$root.TrackingNumber}}</div>
      </div>
    </div>
    <div class="form_title text-center">נא סמני ב- "X" איזה פריט את מחזירה וצרפי את המדבקה הנ"ל לתוך החבילה</div>
    <table>
      <thead>
        <tr>
          <th class="text-center">מק׳׳ט</th>
          <th class="text-center">כמות</th>
          <th class="text-center">שם פריט</th>
          <th class="text-center">החזרה</th>
          <th class="text-center">קוד סיבת החזרה</th>
        </tr>
      </thead>
      <tbody>
        {{- range .Items }}
        <tr>
          <td class="text-center">&nbsp;</td>
          <td class="text-center">&nbsp;{{.Quantity}}</td>
          <td class="text-center">&nbsp;{{.Name}}</td>
          <td>&nbsp;</td>
          <td>&nbsp;</td>
        </tr>
        {{- end }}
      </tbody>
    </table>
    <form action="#">
      <div class="form_title text-center">סמני כיצד תרצי לקבל את הזיכוי:</div>
      <div class="checkbox-row text-center">
        <div class="checkbox_wrap">
          <label>
            <input type="checkbox">
            <span class="label-text">זיכוי כספי</span>
          </label>
        </div>
        <div class="checkbox_wrap">
          <label>
            <input type="checkbox">
            <span class="label-text">קרדיט באתר</span>
          </label>
        </div>
      </div>
      <div class="bottom-info text-center">החזר כספי בניכוי של 5% משווי הפריט *</div>
      <textarea class="notes_input" placeholder="הערות נוספות:"></textarea>
    </form>
    <div>{{.PageNumber}} מתוך {{$root.PageTotal}}<span class="bottom_date">{{$root.Date}}</span></div>
  </div>
</div>
{{- end }}
<div class="sticker-page-wrapper3">
  <div class="sticker_wrapper">
    <div class="bar-code">
      <img src="{{.ReplyBarcode}}" alt="">
      <div style="padding-right: 6px">{{.ReplyCode}}</div>
    </div>
    <div class="top-info-text">
      תגוביינא רשום מיוחד- אין צורך בבול <strong>אישור מס׳ 16941</strong>
    </div>
    <div class="middle-content">
      <strong class="title-text">לכבוד:</strong>
      אדיקט נ.א בע"מ <br>
      באמצעות בית הדואר <strong>רמת השרון</strong> <br>
      תא דואר <strong>1771</strong> <br>
      רמת השרון <strong>4710001</strong>
    </div>
    <div class="bottom-info-text">
      <div class="data">
        <strong>שם לקוח:</strong> {{.FirstName}} {{.LastName}}
      </div>
      <div class="data">
        <strong>מס׳ הזמנה:</strong> {{.OrderName}}
      </div>
    </div>
    <div style="display:inline-block">{{.PageTotal}} מתוך {{.PageTotal}}</div>
  </div>
</div>
`
