package treesitter

// Capture names follow the theme scopes: a dotted capture such as
// "function.method" is styled as "function" unless the theme names it.

const goQuery = `
(comment) @comment
[
  (interpreted_string_literal)
  (raw_string_literal)
  (rune_literal)
] @string
(escape_sequence) @string.escape
[
  (int_literal)
  (float_literal)
  (imaginary_literal)
] @number
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "fallthrough" "for" "func" "go" "goto" "if" "import" "interface"
  "map" "package" "range" "return" "select" "struct" "switch"
  "type" "var"
] @keyword
[(nil) (true) (false) (iota)] @constant.builtin
((identifier) @type.builtin (#match? @type.builtin "^(bool|byte|rune|string|int|int8|int16|int32|int64|uint|uint8|uint16|uint32|uint64|uintptr|float32|float64|complex64|complex128|error|any|comparable)$"))
((identifier) @builtin (#match? @builtin "^(append|cap|clear|close|complex|copy|delete|imag|len|make|max|min|new|panic|print|println|real|recover)$"))
(const_spec name: (identifier) @constant)
(type_identifier) @type
(package_identifier) @type.namespace
(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function.method)
(method_elem name: (field_identifier) @function.method)
(call_expression function: (identifier) @function.call)
(call_expression function: (selector_expression field: (field_identifier) @function.call))
(field_identifier) @field
(parameter_declaration name: (identifier) @parameter)
(variadic_parameter_declaration name: (identifier) @parameter)
(label_name) @keyword.label
(identifier) @variable
[
  "+" "-" "*" "/" "%" "==" "!=" "<=" ">=" "<" ">" "=" ":=" "&&" "||"
  "!" "&" "|" "^" "<<" ">>" "&^" "+=" "-=" "*=" "/=" "%=" "&=" "|="
  "^=" "<<=" ">>=" "&^=" "<-" "++" "--" "..."
] @operator
["." "," ";" ":"] @punctuation.delimiter
["(" ")" "[" "]" "{" "}"] @punctuation.bracket
`

const rustQuery = `
[(line_comment) (block_comment)] @comment
[(string_literal) (raw_string_literal) (char_literal)] @string
(escape_sequence) @string.escape
[(integer_literal) (float_literal)] @number
(boolean_literal) @constant.builtin
[
  "as" "break" "const" "continue" "else" "enum" "fn" "for" "if" "impl"
  "in" "let" "loop" "match" "mod" "pub" "return" "static" "struct"
  "trait" "type" "unsafe" "use" "where" "while"
] @keyword
(mutable_specifier) @keyword
(self) @builtin
(primitive_type) @type.builtin
(type_identifier) @type
(function_item name: (identifier) @function)
(call_expression function: (identifier) @function.call)
(call_expression function: (field_expression field: (field_identifier) @function.method))
(macro_invocation macro: (identifier) @function.macro)
(field_identifier) @field
(parameter pattern: (identifier) @parameter)
(identifier) @variable
["::" "." "," ";" ":"] @punctuation.delimiter
["(" ")" "[" "]" "{" "}"] @punctuation.bracket
["+" "-" "*" "/" "%" "==" "!=" "<=" ">=" "<" ">" "=" "&&" "||" "!" "&" "|" "->" "=>"] @operator
`

const yamlQuery = `
(comment) @comment
[(string_scalar) (double_quote_scalar) (single_quote_scalar)] @string
[(integer_scalar) (float_scalar)] @number
[(null_scalar) (boolean_scalar)] @constant
(block_mapping_pair key: (_) @field)
(flow_pair key: (_) @field)
[(anchor_name) (alias_name)] @keyword
(tag) @type
["," ":" "-" "[" "]" "{" "}" ">" "|" "*" "&"] @punctuation
`

const tomlQuery = `
(comment) @comment
(string) @string
[(integer) (float)] @number
(boolean) @constant
[(local_date) (local_time) (local_date_time) (offset_date_time)] @string.special
[(bare_key) (quoted_key)] @field
(table [(bare_key) (quoted_key) (dotted_key)] @type)
(table_array_element [(bare_key) (quoted_key) (dotted_key)] @type)
["=" "." "," "[" "]" "[[" "]]" "{" "}"] @punctuation
`

const bashQuery = `
(comment) @comment
[(string) (raw_string) (heredoc_body)] @string
(number) @number
[(variable_name) (special_variable_name)] @variable
(command_name) @function.call
(function_definition name: (word) @function)
[
  "if" "then" "else" "elif" "fi" "case" "esac" "for" "while" "until"
  "do" "done" "in" "function" "select" "return" "exit" "break" "continue"
  "local" "export" "readonly" "declare" "typeset" "unset"
] @keyword
["$" "${" "}" "(" ")" "((" "))" "[" "]" "[[" "]]" "{" ";" ";;" "&&" "||" "|" "&" "<" ">" ">>" "<<" "<<<"] @operator
`

const markdownQuery = `
[(atx_heading) (setext_heading)] @keyword
[(thematic_break) (block_quote_marker)] @comment
[
  (list_marker_plus) (list_marker_minus) (list_marker_star)
  (list_marker_dot) (list_marker_parenthesis)
] @keyword
[(task_list_marker_checked) (task_list_marker_unchecked)] @constant
[(fenced_code_block_delimiter) (indented_code_block)] @string
(info_string) @comment
(language) @type
(link_reference_definition) @function
[(pipe_table_delimiter_row) (pipe_table_delimiter_cell)] @comment
`
